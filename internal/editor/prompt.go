package editor

import "yate/internal/input"

// prompt runs a modal line-input loop, showing prefix, the typed text and
// suffix in the message bar. It returns ok == false when the user presses
// Escape. Enter on an empty line and navigation keys are ignored.
func (e *Editor) prompt(prefix, suffix string) (string, bool, error) {
	buf := make([]byte, 0, 128)
	for {
		e.SetStatus(Msg(prefix).Str(string(buf)).Str(suffix))
		if err := e.Refresh(); err != nil {
			return "", false, err
		}
		k, err := e.keys.ReadKey()
		if err != nil {
			return "", false, err
		}
		switch {
		case k == keyBackspace || k == keyCtrlH || k == keyDelete:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case k == keyEscape:
			e.SetStatus(Msg(""))
			return "", false, nil
		case k == keyEnter:
			if len(buf) != 0 {
				e.SetStatus(Msg(""))
				return string(buf), true, nil
			}
		case k.IsPrintable():
			buf = append(buf, k.Byte)
		}
	}
}

var (
	keyEnter     = input.ByteKey('\r')
	keyCtrlH     = input.ByteKey(input.Ctrl('h'))
	keyBackspace = input.Named(input.Backspace)
	keyDelete    = input.Named(input.Delete)
	keyEscape    = input.Named(input.Escape)
)
