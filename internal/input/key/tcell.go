package key

import "github.com/gdamore/tcell/v2"

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
}

// FromTcell converts a terminal key event. It returns false for keys that
// have no equivalent.
//
// Terminals cannot tell Ctrl+I from Tab or Ctrl+M from Enter; those arrive
// as Tab and Enter. Ctrl+/ arrives as the unit separator and is reported
// as '/' with Ctrl.
func FromTcell(ev *tcell.EventKey) (Event, bool) {
	mods := fromTcellMods(ev.Modifiers())
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		return NewRuneEvent(ev.Rune(), mods), true
	case k == tcell.KeyBacktab:
		return NewSpecialEvent(KeyTab, mods.With(ModShift)), true
	case k == tcell.KeyCtrlUnderscore || k == tcell.KeyUS:
		return NewRuneEvent('/', mods.With(ModCtrl)), true
	}
	if special, ok := tcellKeys[k]; ok {
		return NewSpecialEvent(special, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(ModCtrl)), true
	}
	// Raw control codes 0x01..0x1A.
	if k >= tcell.KeySOH && k <= tcell.KeySUB {
		return NewRuneEvent('a'+rune(k-tcell.KeySOH), mods.With(ModCtrl)), true
	}
	return Event{}, false
}

func fromTcellMods(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(ModMeta)
	}
	return mods
}
