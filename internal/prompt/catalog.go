package prompt

import "strings"

type AudienceStyle struct {
	Name  string
	Style string
}

type Scene struct {
	Setting     string
	Environment string
	Lighting    string
	Mood        string
}

const defaultAudienceStyle = "modern and appealing"

var defaultScene = Scene{
	Setting:     "presented as the hero on a clean studio set",
	Environment: "seamless neutral backdrop with subtle gradient and soft floor reflection",
	Lighting:    "soft key light with gentle rim highlights",
	Mood:        "polished and premium",
}

var audienceStyles = map[string]AudienceStyle{
	"gen z": {
		Name:  "Gen Z",
		Style: "energetic, authentic UGC-inspired look with bold colors and candid framing",
	},
	"millennials": {
		Name:  "Millennials",
		Style: "lifestyle-driven, warm and aspirational with natural tones",
	},
	"gen x": {
		Name:  "Gen X",
		Style: "grounded and practical with understated confident styling",
	},
	"baby boomers": {
		Name:  "Baby Boomers",
		Style: "classic, trustworthy and clear with comfortable warm palettes",
	},
	"professionals": {
		Name:  "Professionals",
		Style: "sleek, minimal and sophisticated with a corporate-clean finish",
	},
	"parents": {
		Name:  "Parents",
		Style: "friendly, safe and reassuring with bright family-home warmth",
	},
	"students": {
		Name:  "Students",
		Style: "playful, affordable feel with vibrant campus energy",
	},
	"fitness enthusiasts": {
		Name:  "Fitness Enthusiasts",
		Style: "dynamic, high-contrast sport aesthetic with motion and sweat-ready energy",
	},
	"luxury shoppers": {
		Name:  "Luxury Shoppers",
		Style: "opulent editorial styling with rich materials and restrained elegance",
	},
	"outdoor adventurers": {
		Name:  "Outdoor Adventurers",
		Style: "rugged, sunlit adventure photography with earthy tones",
	},
}

// Keyed by exact product name as written in briefs.
var productScenes = map[string]Scene{
	"Hydra Bottle": {
		Setting:     "standing on a wet rock beside a mountain stream with droplets on its surface",
		Environment: "alpine riverside with moss, smooth stones and distant pine trees",
		Lighting:    "crisp morning sunlight with sparkling water highlights",
		Mood:        "fresh, clean and invigorating",
	},
	"Solar Backpack": {
		Setting:     "worn by a hiker pausing on a ridge trail, solar panel facing the sun",
		Environment: "sweeping mountain ridge with open sky and scattered clouds",
		Lighting:    "golden hour sunlight with long soft shadows",
		Mood:        "adventurous and self-reliant",
	},
	"Glow Serum": {
		Setting:     "a glass dropper bottle resting on a marble tray with a single drop falling",
		Environment: "bright bathroom vanity with eucalyptus sprigs and soft towels",
		Lighting:    "diffused window light with luminous glass refraction",
		Mood:        "radiant, calm and self-caring",
	},
	"Aero Sneakers": {
		Setting:     "a pair mid-stride over an urban running track",
		Environment: "city track at dawn with blurred skyline",
		Lighting:    "cool dawn light with a warm rim from the rising sun",
		Mood:        "fast, light and determined",
	},
	"Cold Brew Can": {
		Setting:     "an ice-cold can with condensation on a sunlit cafe counter",
		Environment: "minimal cafe interior with terrazzo surfaces and plants",
		Lighting:    "bright midday light with crisp reflections on the can",
		Mood:        "refreshing and effortless",
	},
}

func resolveAudience(audience string) AudienceStyle {
	key := strings.ToLower(strings.TrimSpace(audience))
	if style, ok := audienceStyles[key]; ok {
		return style
	}
	return AudienceStyle{Name: strings.TrimSpace(audience), Style: defaultAudienceStyle}
}

func resolveScene(product string) Scene {
	if scene, ok := productScenes[product]; ok {
		return scene
	}
	return defaultScene
}
