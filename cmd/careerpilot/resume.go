package main

import (
	"fmt"
	"os"

	"github.com/careerpilot/careerpilot/pkg/resume"
)

// resumeSkills reads a résumé file and merges the skills it mentions into
// the skills field.
func resumeSkills(path, skills string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := resume.ReadAtMost(f)
	if err != nil {
		return "", err
	}
	text, err := resume.ExtractText(path, data)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	detected := resume.DetectSkills(text, resume.Vocabulary())
	if len(detected) == 0 {
		return "", fmt.Errorf("no known skills found in %s", path)
	}
	return resume.MergeSkills(skills, detected), nil
}
