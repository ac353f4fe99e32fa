package internal

import (
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

const envPrefix = "FRAGMENTS_"

func ShowVersion() {
	log.Printf("Version: %s\n", versioninfo.Short())
}

// EnvironmentVars logs the FRAGMENTS_* variables in effect, masking secrets.
func EnvironmentVars() {
	sensitiveRegex := regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

	var entries []string
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, envPrefix) {
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return
	}
	sort.Strings(entries)

	log.Println("Environment variables")
	for _, entry := range entries {
		key, value, _ := strings.Cut(entry, "=")
		if sensitiveRegex.MatchString(key) {
			value = "********"
		}
		log.Printf("  %s: %s\n", key, value)
	}
}
