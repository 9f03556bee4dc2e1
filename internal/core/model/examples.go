// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package model defines the core data structures for the application.
// This file provides a complete example analysis used for few-shot
// prompting: embedding a well-formed instance in the instruction template
// measurably improves the structure of the model's output.
package model

// GetExampleAnalysis returns a fully populated BrandAnalysis suitable for
// inclusion in the prompt as an output example and for use as a fixture in
// tests.
func GetExampleAnalysis() *BrandAnalysis {
	return &BrandAnalysis{
		Themes:       []string{"vegan cooking", "sustainable living"},
		ContentStyle: "informative with a humorous edge",
		TargetAudience: TargetAudience{
			AgeRange:  "25-34",
			Gender:    "mixed",
			Interests: []string{"plant-based food", "zero-waste lifestyle", "home cooking"},
			Location:  "urban Brazil",
		},
		Engagement: "High comment activity with recipe questions; viewers frequently share videos with friends.",
		ValuesAndTone: ValuesAndTone{
			Values: []string{"sustainability", "accessibility", "transparency"},
			Tone:   "informal",
		},
		PrimaryPlatforms:    []string{"TikTok", "Instagram Reels", "YouTube"},
		PriorCollaborations: "One sponsored series with a local organic grocery chain.",
		MarketNiches:        []string{"plant-based food", "eco-friendly kitchenware"},
		BrandMatches: []*BrandMatch{
			{
				BrandType:     "vegan food products",
				Examples:      []string{"NotCo", "Fazenda Futuro"},
				Justification: "The creator's recipes already feature plant-based substitutes, so product placement feels native to the format.",
			},
		},
		CollaborationTypes:       []string{"sponsored recipe videos", "affiliate discount codes"},
		BrandImageConsiderations: "Partner brands should have verifiable sustainability claims; the audience is quick to call out greenwashing.",
	}
}
