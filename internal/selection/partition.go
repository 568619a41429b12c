package selection

import "strings"

// Partition returns the tokens of args addressed to flag, rewritten so the
// target's own flag set can parse them.
//
// A token addressed to flag starts with "--<flag>." or "-<flag>."; the
// "<flag>." part is removed, keeping the leading dashes. When the token right
// after a rewritten one does not start with "-", it is taken as that flag's
// value and copied unchanged. Every other token is dropped. args is never
// modified.
func Partition(args []string, flag string) []string {
	long := "--" + flag + "."
	short := "-" + flag + "."

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		tok := args[i]
		var rest, dashes string
		switch {
		case strings.HasPrefix(tok, long):
			rest, dashes = tok[len(long):], "--"
		case strings.HasPrefix(tok, short):
			rest, dashes = tok[len(short):], "-"
		default:
			continue
		}
		out = append(out, dashes+rest)

		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}
