package feeds

import (
	"testing"

	"newsbrief/types"
)

func TestClassifySection(t *testing.T) {
	tests := []struct {
		name        string
		region      Region
		title       string
		description string
		want        types.Section
	}{
		{
			name:   "world region ignores keywords",
			region: RegionWorld,
			title:  "New semiconductor plant opens",
			want:   types.SectionWorld,
		},
		{
			name:   "us tech by title keyword",
			region: RegionUS,
			title:  "Chip maker beats earnings estimates",
			want:   types.SectionUSTech,
		},
		{
			name:        "us tech by description keyword",
			region:      RegionUS,
			title:       "Quarterly earnings roundup",
			description: "Results from the largest cloud computing providers",
			want:        types.SectionUSTech,
		},
		{
			name:   "us industry without keywords",
			region: RegionUS,
			title:  "Oil prices climb on supply concerns",
			want:   types.SectionUSIndustry,
		},
		{
			name:   "malaysia tech",
			region: RegionMalaysia,
			title:  "Local fintech firm raises new funding round",
			want:   types.SectionMalaysiaTech,
		},
		{
			name:   "malaysia industry",
			region: RegionMalaysia,
			title:  "Palm oil exports rise in second quarter",
			want:   types.SectionMalaysiaIndustry,
		},
		{
			name:   "ai needs word boundary",
			region: RegionUS,
			title:  "Airline expands domestic routes",
			want:   types.SectionUSIndustry,
		},
		{
			name:   "ai as standalone word",
			region: RegionUS,
			title:  "Banks bet on AI to cut costs",
			want:   types.SectionUSTech,
		},
		{
			name:   "case insensitive",
			region: RegionMalaysia,
			title:  "CYBERSECURITY spending to double",
			want:   types.SectionMalaysiaTech,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifySection(tt.region, tt.title, tt.description)
			if got != tt.want {
				t.Errorf("ClassifySection(%s, %q, %q) = %s, want %s", tt.region, tt.title, tt.description, got, tt.want)
			}
		})
	}
}
