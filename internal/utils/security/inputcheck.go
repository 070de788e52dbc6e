package security

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Limits bounds the size and content of user-supplied strings.
type Limits struct {
	MaxString int // generic string max length (flag values, version ids)
	MaxPath   int // file path max length
	AllowNL   bool
	AllowTab  bool
}

func DefaultLimits() Limits {
	return Limits{
		MaxString: 4096,
		MaxPath:   4096,
		AllowNL:   true,
		AllowTab:  true,
	}
}

// ValidateString rejects strings with invalid UTF-8, NUL bytes, control
// runes, or excessive length. Empty strings always pass.
func ValidateString(name, s string, lim Limits) error {
	if s == "" {
		return nil
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s: invalid UTF-8", name)
	}
	if strings.ContainsRune(s, '\x00') {
		return fmt.Errorf("%s: contains NUL byte", name)
	}
	if utf8.RuneCountInString(s) > lim.MaxString {
		return fmt.Errorf("%s: too long (%d > %d)", name, utf8.RuneCountInString(s), lim.MaxString)
	}
	for _, r := range s {
		if r == '\n' && lim.AllowNL {
			continue
		}
		if r == '\t' && lim.AllowTab {
			continue
		}
		if !unicode.IsPrint(r) {
			return fmt.Errorf("%s: contains non-printable/control runes", name)
		}
	}
	return nil
}

// ValidatePath applies the string checks to a file path.
func ValidatePath(name, s string, lim Limits) error {
	if err := ValidateString(name, s, lim); err != nil {
		return err
	}
	_ = filepath.Clean(s) // validate only, never mutate the caller's path
	return nil
}

// AttachRecursive hooks input validation into a command tree so every flag
// value and positional argument is checked before its RunE fires.
func AttachRecursive(root *cobra.Command, lim Limits) {
	attach(root, lim)
	for _, c := range root.Commands() {
		AttachRecursive(c, lim)
	}
}

func attach(cmd *cobra.Command, lim Limits) {
	prev := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if err := validateFlagsAndArgs(c, args, lim); err != nil {
			return err
		}
		if prev != nil {
			return prev(c, args)
		}
		return nil
	}
}

func validateFlagsAndArgs(cmd *cobra.Command, args []string, lim Limits) error {
	for i, a := range args {
		if err := ValidateString(fmt.Sprintf("arg[%d]", i), a, lim); err != nil {
			return err
		}
	}

	var firstErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if firstErr != nil {
			return
		}
		name := fmt.Sprintf("flag --%s", f.Name)

		// Fields named after paths or files get the path checks
		lower := strings.ToLower(f.Name)
		isPathy := strings.Contains(lower, "path") ||
			strings.Contains(lower, "file") ||
			strings.Contains(lower, "dir") ||
			strings.Contains(lower, "output")

		check := func(name, val string) error {
			if isPathy {
				return ValidatePath(name, val, lim)
			}
			return ValidateString(name, val, lim)
		}

		switch f.Value.Type() {
		case "string":
			val, _ := cmd.Flags().GetString(f.Name)
			if val != "" {
				firstErr = check(name, val)
			}
		case "stringSlice":
			vals, _ := cmd.Flags().GetStringSlice(f.Name)
			for i, v := range vals {
				if v == "" {
					continue
				}
				if firstErr = check(fmt.Sprintf("%s[%d]", name, i), v); firstErr != nil {
					return
				}
			}
		case "stringArray":
			vals, _ := cmd.Flags().GetStringArray(f.Name)
			for i, v := range vals {
				if v == "" {
					continue
				}
				if firstErr = check(fmt.Sprintf("%s[%d]", name, i), v); firstErr != nil {
					return
				}
			}
		default:
			// other flag types carry no free-form text
		}
	})
	return firstErr
}
