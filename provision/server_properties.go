package provision

import (
	"fmt"
	"strings"
)

type property struct {
	key   string
	value string
}

// content-log-file-enabled makes the server write the ContentLog__ files the report attaches.
var defaultServerProperties = []property{
	{"server-name", "Dedicated Server"},
	{"gamemode", "survival"},
	{"force-gamemode", "false"},
	{"difficulty", "easy"},
	{"allow-cheats", "true"},
	{"max-players", "10"},
	{"online-mode", "false"},
	{"allow-list", "false"},
	{"server-port", "19132"},
	{"server-portv6", "19133"},
	{"view-distance", "32"},
	{"tick-distance", "4"},
	{"player-idle-timeout", "30"},
	{"max-threads", "8"},
	{"level-name", WorldName},
	{"level-seed", ""},
	{"default-player-permission-level", "member"},
	{"texturepack-required", "false"},
	{"content-log-file-enabled", "true"},
	{"compression-threshold", "1"},
	{"server-authoritative-movement", "server-auth"},
	{"emit-server-telemetry", "false"},
}

func serverProperties() string {
	var b strings.Builder
	for _, p := range defaultServerProperties {
		fmt.Fprintf(&b, "%s=%s\n", p.key, p.value)
	}
	return b.String()
}
