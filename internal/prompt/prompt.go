package prompt

import (
	"errors"
	"fmt"
	"strings"

	"campaign-gen/internal/brief"
)

const (
	MinLength = 50
	MaxLength = 4000
)

var (
	ErrInvalidInput = errors.New("invalid prompt input")
	ErrTooShort     = errors.New("prompt too short")
	ErrTooLong      = errors.New("prompt too long")
)

var messageStripper = strings.NewReplacer("<", "", ">", "", "{", "", "}", "")

// Compose builds the generation prompt for one product. It is pure: the same
// inputs always produce the same string.
func Compose(product brief.Product, b brief.Brief, message string) (string, error) {
	switch {
	case strings.TrimSpace(product.Name) == "":
		return "", fmt.Errorf("%w: product name is empty", ErrInvalidInput)
	case strings.TrimSpace(product.Description) == "":
		return "", fmt.Errorf("%w: product description is empty", ErrInvalidInput)
	case strings.TrimSpace(b.TargetAudience) == "":
		return "", fmt.Errorf("%w: target audience is empty", ErrInvalidInput)
	case strings.TrimSpace(message) == "":
		return "", fmt.Errorf("%w: campaign message is empty", ErrInvalidInput)
	}

	audience := resolveAudience(b.TargetAudience)
	scene := resolveScene(product.Name)
	cleanMessage := strings.TrimSpace(messageStripper.Replace(message))

	var sb strings.Builder
	sb.Grow(1024)

	writeSection(&sb, "Subject and action", fmt.Sprintf(
		"A professional advertising photograph of %s, %s, %s.",
		strings.TrimSpace(product.Name), strings.TrimSpace(product.Description), scene.Setting))
	writeSection(&sb, "Environment", scene.Environment+".")
	writeSection(&sb, "Composition",
		"Product is the clear focal point, sharp and fully visible, with balanced negative space for campaign copy.")
	writeSection(&sb, "Lighting and mood", fmt.Sprintf("%s; the overall mood is %s.", capitalize(scene.Lighting), scene.Mood))
	writeSection(&sb, "Style and quality", fmt.Sprintf(
		"Photorealistic commercial quality, high detail, true-to-life materials, %s aesthetic.", audience.Style))
	writeSection(&sb, "Audience and campaign", fmt.Sprintf(
		"Designed to resonate with %s, evoking the message: \"%s\". No text, logos or watermarks in the image.",
		audience.Name, cleanMessage))

	out := strings.TrimSpace(sb.String())
	if err := checkLength(out); err != nil {
		return "", err
	}
	return out, nil
}

func checkLength(s string) error {
	n := len(s)
	if n < MinLength {
		return fmt.Errorf("%w: %d characters (minimum %d)", ErrTooShort, n, MinLength)
	}
	if n > MaxLength {
		return fmt.Errorf("%w: %d characters (maximum %d)", ErrTooLong, n, MaxLength)
	}
	return nil
}

func writeSection(sb *strings.Builder, title, body string) {
	sb.WriteString(title)
	sb.WriteString(": ")
	sb.WriteString(body)
	sb.WriteString("\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
