package domain

import (
	"fmt"
	"strings"
	"time"
)

// Outbound text the relay sends to clients. Clients render these lines
// as-is, so the exact wording is part of the protocol surface.

func JoinedLine(name string) string {
	return fmt.Sprintf("SYSTEM: %s has joined the chat!", name)
}

func WelcomeLine(name string) string {
	return fmt.Sprintf("SYSTEM: Welcome to the chat, %s! Type 'LIST' to see online users.", name)
}

func LeftLine(name string) string {
	return fmt.Sprintf("SYSTEM: %s has left the chat.", name)
}

// TimeoutLine reuses the departure wording with the eviction reason.
func TimeoutLine(name string) string {
	return fmt.Sprintf("SYSTEM: %s has left the chat (timeout)", name)
}

func ChatLine(name, text string, at time.Time) string {
	return fmt.Sprintf("[%s] %s: %s", at.Format(time.TimeOnly), name, text)
}

// RosterLine lists the given display names, one indented entry per user.
func RosterLine(names []string) string {
	var sb strings.Builder
	sb.WriteString("SYSTEM: Online users:\n")
	for _, name := range names {
		sb.WriteString("  - ")
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	return sb.String()
}
