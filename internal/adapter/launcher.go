package adapter

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Launcher hands a stream URL off to an external media player.
type Launcher struct {
	command   string   // configured player command, empty for system default
	args      []string // additional arguments for the player
	startFlag string   // resume offset flag prefix, e.g., "--start=" or "-ss "
	logger    *slog.Logger
}

// offsetFlags maps known players to their resume-offset flag.
var offsetFlags = map[string]string{
	"mpv":       "--start=",
	"vlc":       "--start-time=",
	"iina":      "--mpv-start=",
	"celluloid": "--mpv-start=",
}

// NewLauncher creates a new Launcher with auto-detection of the offset flag
// for known players when one is not explicitly configured.
func NewLauncher(command string, args []string, startFlag string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	resolvedFlag := startFlag
	if resolvedFlag == "" && command != "" {
		base := strings.ToLower(filepath.Base(command))
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if flag, ok := offsetFlags[base]; ok {
			resolvedFlag = flag
			logger.Debug("auto-detected player offset flag", "player", base, "flag", resolvedFlag)
		}
	}

	return &Launcher{
		command:   command,
		args:      args,
		startFlag: resolvedFlag,
		logger:    logger,
	}
}

// Launch opens a media URL in the configured player, resuming at startOffset
// when the player supports it. Falls back to the system default handler when
// no player is configured.
func (l *Launcher) Launch(url string, startOffset time.Duration) error {
	if l.command == "" {
		return l.launchDefault(url)
	}

	args := append([]string{}, l.args...)

	if startOffset > 0 && l.startFlag != "" {
		// Flags like "-ss " pass the value as a separate argument;
		// flags like "--start=" get it appended directly.
		if strings.HasSuffix(l.startFlag, " ") {
			args = append(args, strings.TrimSuffix(l.startFlag, " "), fmt.Sprintf("%.0f", startOffset.Seconds()))
		} else {
			args = append(args, fmt.Sprintf("%s%.0f", l.startFlag, startOffset.Seconds()))
		}
	} else if startOffset > 0 {
		l.logger.Warn("cannot set start offset - unknown player, configure start_flag in config",
			"command", l.command, "offset", startOffset)
	}

	args = append(args, url)

	l.logger.Info("launching player", "command", l.command, "args", args)

	if _, err := exec.LookPath(l.command); err != nil {
		l.logger.Error("player not found in PATH", "command", l.command, "error", err)
		return fmt.Errorf("player %q not found: %w", l.command, err)
	}

	return exec.Command(l.command, args...).Start()
}

// launchDefault opens the URL using the system default handler
func (l *Launcher) launchDefault(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	l.logger.Info("launching with system default", "os", runtime.GOOS)

	return cmd.Start()
}
