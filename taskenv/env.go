// Package taskenv manipulates the environment of a task's command spec.
package taskenv

import (
	"strconv"
	"strings"
)

const (
	// VolumeNameVarPrefix is the variable family naming the provider-backed
	// volumes of a task. The first volume uses the bare name, later volumes
	// are numbered: DVDI_VOLUME_NAME, DVDI_VOLUME_NAME1, DVDI_VOLUME_NAME2.
	VolumeNameVarPrefix = "DVDI_VOLUME_NAME"

	// VolumeDriverVarPrefix is the matching driver-name family. A driver
	// variable always shares its suffix with the name variable of the same
	// volume.
	VolumeDriverVarPrefix = "DVDI_VOLUME_DRIVER"
)

// NextSuffix returns the suffix for the next variable of the indexed family
// rooted at prefix: "" when no variable of the family exists yet, otherwise
// the decimal successor of the highest index found. The bare prefix counts
// as index 0; names whose remainder is not a number belong to other families
// and are skipped.
func NextSuffix(env map[string]string, prefix string) string {
	max := -1
	for name := range env {
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		rest := name[len(prefix):]
		if rest == "" {
			if max < 0 {
				max = 0
			}
			continue
		}

		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}

	if max < 0 {
		return ""
	}
	return strconv.Itoa(max + 1)
}

// SetVolumeVars adds the name and driver variables for one provider-backed
// volume to env, allocating the next free suffix of the name family. The
// driver variable reuses the same suffix so the two families stay aligned.
func SetVolumeVars(env map[string]string, name, driver string) {
	suffix := NextSuffix(env, VolumeNameVarPrefix)
	env[VolumeNameVarPrefix+suffix] = name
	env[VolumeDriverVarPrefix+suffix] = driver
}
