package cmd

import (
	"io"
	"os"
	"runtime"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// programOptions points Bubble Tea at the real terminal when stdin is
// piped, so records can come from a pipe while keys still work. The
// returned cleanup closes any terminal handles it opened.
func programOptions(stdin io.Reader, stdout io.Writer) ([]tea.ProgramOption, func()) {
	noop := func() {}
	f, ok := stdin.(*os.File)
	if !ok {
		return []tea.ProgramOption{tea.WithInput(stdin), tea.WithOutput(stdout)}, noop
	}
	if term.IsTerminal(int(f.Fd())) {
		return nil, noop
	}

	in, out, err := openTerminalIO()
	if err != nil {
		// no controlling terminal; keys will not work but output still renders
		return nil, noop
	}
	cleanup := func() {
		_ = in.Close()
		if out != nil && out != in {
			_ = out.Close()
		}
	}
	opts := []tea.ProgramOption{tea.WithInput(in)}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts, cleanup
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == in {
		return input, input, nil
	}

	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, nil
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}
