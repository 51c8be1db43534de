package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

// parseAudioSpec reads "lang:codec:channels". Empty parts are left unset.
func parseAudioSpec(spec string) (models.AudioTrack, error) {
	parts := strings.Split(spec, ":")
	if len(parts) > 3 {
		return models.AudioTrack{}, fmt.Errorf("invalid audio track %q, want lang:codec:channels", spec)
	}
	var t models.AudioTrack
	if parts[0] != "" {
		lang := parts[0]
		t.Language = &lang
	}
	if len(parts) > 1 && parts[1] != "" {
		codec := parts[1]
		t.Codec = &codec
	}
	if len(parts) > 2 && parts[2] != "" {
		channels, err := strconv.Atoi(parts[2])
		if err != nil || channels <= 0 {
			return models.AudioTrack{}, fmt.Errorf("invalid channel count in %q", spec)
		}
		t.Channels = &channels
	}
	return t, nil
}
