// Package profile manages the user's persistent retrobuddy profile.
// The profile is stored at ~/.config/retrobuddy/profile.json and is created
// once via the interactive setup flow, then referenced on every command.
package profile

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fakeyudi/retrobuddy/internal/config"
)

// Profile holds user-level preferences set during first-run setup.
type Profile struct {
	Name      string `json:"name"`
	Inputter  string `json:"inputter"`   // written as "info,inputter" on saved games
	OutputDir string `json:"output_dir"` // overrides config when set
}

// inputterPattern matches a Retrosheet-style inputter id: letters and digits.
var inputterPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`)

func profilePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.json"), nil
}

// Exists reports whether a profile file is present on disk.
func Exists() bool {
	p, err := profilePath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// Load reads the profile from disk. Returns an error if the file is missing or malformed.
func Load() (*Profile, error) {
	p, err := profilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("profile not found, run 'retrobuddy setup' to configure: %w", err)
	}
	var prof Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		return nil, fmt.Errorf("malformed profile at %s: %w", p, err)
	}
	return &prof, nil
}

// Save writes the profile to disk, creating the config directory if needed.
func Save(prof *Profile) error {
	p, err := profilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// RunSetup runs the interactive setup wizard on in/out and returns the
// resulting profile. If existing is non-nil, it supplies each prompt's default.
func RunSetup(in io.Reader, out io.Writer, existing *Profile) (*Profile, error) {
	r := bufio.NewReader(in)

	ask := func(prompt, defaultVal string) (string, error) {
		if defaultVal != "" {
			fmt.Fprintf(out, "%s [%s]: ", prompt, defaultVal)
		} else {
			fmt.Fprintf(out, "%s: ", prompt)
		}
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return defaultVal, nil
		}
		return line, nil
	}

	prof := &Profile{}
	if existing != nil {
		*prof = *existing
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  ┌────────────────────────────────────┐")
	fmt.Fprintln(out, "  │   retrobuddy · first-time setup    │")
	fmt.Fprintln(out, "  └────────────────────────────────────┘")
	fmt.Fprintln(out)

	var err error
	prof.Name, err = ask("  Your name", prof.Name)
	if err != nil {
		return nil, err
	}

	for {
		prof.Inputter, err = ask("  Inputter id (letters and digits, blank to skip)", prof.Inputter)
		if err != nil {
			return nil, err
		}
		if prof.Inputter == "" || inputterPattern.MatchString(prof.Inputter) {
			break
		}
		fmt.Fprintln(out, "  inputter ids are 1-16 letters or digits")
		prof.Inputter = ""
	}

	prof.OutputDir, err = ask("  Output directory for edited games (blank for config default)", prof.OutputDir)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out)
	return prof, nil
}
