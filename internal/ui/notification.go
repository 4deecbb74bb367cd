package ui

import (
	"os"
	"os/exec"
	"strings"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"
	IconDialogWarn  = "dialog-warning"

	UrgencyNormal   = "normal"
	UrgencyCritical = "critical"

	notificationAppName = "bed2go"
)

func NotifyWarn(title, text string) {
	NotifySend(UrgencyNormal, title, text, IconDialogWarn)
}

func NotifyError(title, text string) {
	NotifySend(UrgencyCritical, title, text, IconDialogError)
}

// NotifySend shows a desktop notification for the user owning the current X display.
// The controller usually runs as root on a headless board, in which case this is a no-op.
func NotifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Debug("Skipping notification, missing env variable 'DISPLAY'")
		return
	}

	user, err := findDisplayUser(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	output, err := exec.Command("id", "-u", user).Output()
	userId := strings.TrimSpace(string(output))
	if err != nil || len(userId) <= 0 {
		Warning("Cannot send notification, unable to detect user id of %s: %v", user, err)
		return
	}

	cmd := exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userId+"/bus",
		"notify-send",
		"-a", notificationAppName,
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	if err = cmd.Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

func findDisplayUser(display string) (string, error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return "", err
	}
	return parseDisplayUser(string(output), display), nil
}

// parseDisplayUser extracts the user name owning the given display from the output of "who"
func parseDisplayUser(whoOutput string, display string) string {
	for _, line := range strings.Split(whoOutput, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			return fields[0]
		}
	}
	return ""
}
