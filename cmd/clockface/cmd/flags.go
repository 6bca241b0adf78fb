package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/clockface/cmd/clockface/internal/config"
	"github.com/go-drift/clockface/pkg/controller"
)

// overridesNone resolves configuration without command-line overrides.
var overridesNone config.Overrides

// clockFlags are the face options every command accepts.
type clockFlags struct {
	overrides config.Overrides
	out       string
	at        string
}

// parseClockFlags reads --mode, --skin, --size, --width, --height, --out
// and --time, in "--flag value" or "--flag=value" form. Unknown arguments
// are an error.
func parseClockFlags(args []string, allowed ...string) (clockFlags, error) {
	var f clockFlags
	permitted := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		permitted[a] = true
	}
	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(args[i], "=")
		if !strings.HasPrefix(name, "--") || !permitted[name] {
			return f, fmt.Errorf("unknown argument %q", args[i])
		}
		if !hasValue {
			if i+1 >= len(args) {
				return f, fmt.Errorf("%s requires a value", name)
			}
			value = args[i+1]
			i++
		}
		var err error
		switch name {
		case "--mode":
			f.overrides.Mode = value
		case "--skin":
			f.overrides.Skin = value
		case "--size":
			f.overrides.Size, err = positiveInt(name, value)
		case "--width":
			f.overrides.Width, err = positiveInt(name, value)
		case "--height":
			f.overrides.Height, err = positiveInt(name, value)
		case "--out":
			f.out = value
		case "--time":
			f.at = value
		}
		if err != nil {
			return f, err
		}
	}
	return f, nil
}

func positiveInt(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, value)
	}
	return n, nil
}

// timeLayouts are the accepted --time formats.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "15:04:05", "15:04"}

// parseTime reads s in local time. Clock-only values use today's date.
func parseTime(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			t = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), t.Second(), 0, now.Location())
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --time %q (use RFC 3339, \"2006-01-02 15:04:05\" or \"15:04:05\")", s)
}

// resolve loads configuration from --config or the working directory.
func resolve(o config.Overrides) (*config.Resolved, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Resolve(dir, global.configPath, o)
}

// newController builds a controller for res that logs through the CLI
// logger.
func newController(res *config.Resolved) (*controller.Controller, error) {
	ctrl, err := controller.New(res.Settings, res.Catalog)
	if err != nil {
		return nil, err
	}
	ctrl.SetLogger(global.logger)
	return ctrl, nil
}
