// Package lua evaluates keymap conditions in a sandboxed Lua state.
//
//	eval := lua.NewEvaluator()
//	defer eval.Close()
//	registry.SetConditionEvaluator(eval)
//
// Conditions are Lua expressions over the cursor globals documented on
// Evaluator. A script loaded with LoadScript may define helper functions:
//
//	function inDenominator()
//	  return command == "frac" and argIndex == 1
//	end
//
// Every run is bounded by a timeout, so a looping condition fails instead
// of hanging the host.
package lua
