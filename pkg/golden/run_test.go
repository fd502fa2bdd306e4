/******************************************************************************\
* tlox — a bytecode compiler and virtual machine                              *
*                                                                              *
* Licensed under the MIT license (see LICENSE.txt for details)                 *
\******************************************************************************/

package golden

import "testing"

func TestRunStepOutputMatch(t *testing.T) {
	st := Step{
		Source: `print 1 + 2 * 3 - 4 / 2;`,
		Output: []string{"5"},
	}
	if err := RunStep("inline", ".", st); err != nil {
		t.Errorf("unexpected failure: %v", err)
	}
}

func TestRunStepWrongOutputFails(t *testing.T) {
	st := Step{
		Source: `print 1;`,
		Output: []string{"2"},
	}
	if err := RunStep("inline", ".", st); err == nil {
		t.Error("expected a failure for mismatched output")
	}
}

func TestRunStepExpectedRuntimeError(t *testing.T) {
	st := Step{
		Source:        `print 1 + "a";`,
		ExitCode:      70,
		ErrorMessages: []string{"Operands must be two numbers or two strings"},
	}
	if err := RunStep("inline", ".", st); err != nil {
		t.Errorf("unexpected failure: %v", err)
	}
}

func TestRunStepExpectedCompileError(t *testing.T) {
	st := Step{
		Source:        `const var c = 1; c = 2;`,
		ExitCode:      65,
		ErrorMessages: []string{"const"},
	}
	if err := RunStep("inline", ".", st); err != nil {
		t.Errorf("unexpected failure: %v", err)
	}
}

func TestRunStepInput(t *testing.T) {
	st := Step{
		Source: `print read_line();`,
		Input:  []string{"hi there"},
		Output: []string{"hi there"},
	}
	if err := RunStep("inline", ".", st); err != nil {
		t.Errorf("unexpected failure: %v", err)
	}
}
