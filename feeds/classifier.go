package feeds

import (
	"strings"

	"newsbrief/types"
)

// Region is the coarse origin of a source; the keyword classifier
// refines regional entries into tech vs industry sections.
type Region string

const (
	RegionWorld    Region = "world"
	RegionUS       Region = "us"
	RegionMalaysia Region = "malaysia"
)

// techKeywords mark an article as technology coverage. Scored by match
// count; anything else in a regional feed falls through to the industry
// section. Lowercase, more specific phrases first.
var techKeywords = []string{
	"artificial intelligence", " ai ", "machine learning", "chatbot",
	"semiconductor", "chip", "data center", "data centre", "cloud computing",
	"software", "startup", "start-up", "cybersecurity", "hack", "data breach",
	"smartphone", "app ", "gadget", "5g", "broadband", "fintech",
	"e-commerce", "ecommerce", "crypto", "blockchain", "social media",
	"tech", "digital", "robot", "automation", "electric vehicle", " ev ",
}

// scoreKeywords counts keyword matches in text.
func scoreKeywords(text string, keywords []string) int {
	score := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			score++
		}
	}
	return score
}

// ClassifySection assigns the section tag for an entry. World sources
// keep a single section; US and Malaysia sources split into tech vs
// industry by keyword score. The title is counted twice so it outweighs
// the description, matching how headlines carry the subject.
func ClassifySection(region Region, title, description string) types.Section {
	if region == RegionWorld {
		return types.SectionWorld
	}

	text := " " + strings.ToLower(title) + " " + strings.ToLower(title) + " " + strings.ToLower(description) + " "
	isTech := scoreKeywords(text, techKeywords) > 0

	switch region {
	case RegionUS:
		if isTech {
			return types.SectionUSTech
		}
		return types.SectionUSIndustry
	case RegionMalaysia:
		if isTech {
			return types.SectionMalaysiaTech
		}
		return types.SectionMalaysiaIndustry
	}
	return types.SectionWorld
}
