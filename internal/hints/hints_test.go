package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Run("suggests config flag", func(t *testing.T) {
		hint := ForConfigNotFound(nil)
		if !strings.Contains(hint, "--config") {
			t.Errorf("hint %q does not mention --config", hint)
		}
	})

	t.Run("suggests user config path when searched", func(t *testing.T) {
		paths := []string{
			"race.yaml",
			"/home/u/.config/go-salesrace/race.yaml",
		}
		hint := ForConfigNotFound(paths)
		if !strings.Contains(hint, ".config/go-salesrace/race.yaml") {
			t.Errorf("hint %q does not suggest user config path", hint)
		}
	})

	t.Run("ignores non-user paths", func(t *testing.T) {
		hint := ForConfigNotFound([]string{"race.yaml", "race.yml"})
		if strings.Contains(hint, "or create") {
			t.Errorf("hint %q suggests a path it should not", hint)
		}
	})
}

func TestForUnknownPlatform(t *testing.T) {
	t.Run("lists available platforms", func(t *testing.T) {
		hint := ForUnknownPlatform([]string{"linkedin", "instagram-feed"})
		if !strings.Contains(hint, "linkedin, instagram-feed") {
			t.Errorf("hint = %q", hint)
		}
	})

	t.Run("empty list produces no hint", func(t *testing.T) {
		if hint := ForUnknownPlatform(nil); hint != "" {
			t.Errorf("hint = %q, want empty", hint)
		}
	})
}

func TestHintFormat(t *testing.T) {
	for name, hint := range map[string]string{
		"no input":         ForNoInput(),
		"missing column":   ForMissingColumn(),
		"bad order date":   ForBadOrderDate(),
		"output directory": ForOutputDirectory(),
	} {
		t.Run(name, func(t *testing.T) {
			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q does not use standard prefix", hint)
			}
		})
	}
}
