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

// This file renders the downloadable PDF report. The report is a pure
// function of the analysis: the document's creation and modification dates
// are pinned so two renders of the same analysis are byte-identical.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/brandmatch/brand-media-analyzer/internal/core/model"
)

// ReportFilename is the download filename for the generated report.
const ReportFilename = "brand_compatibility_analysis.pdf"

const (
	reportTitle   = "Brand Compatibility Analysis Report"
	bulletPrefix  = "• "
	bodyFontSize  = 11.0
	titleFontSize = 24.0
)

// GenerateReport renders the analysis as a PDF document.
//
// Outputs:
//   - []byte: The finished PDF, identical across renders of the same
//     analysis.
//   - error: Non-nil when PDF assembly fails.
func GenerateReport(a *model.BrandAnalysis) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")

	// Pin the document metadata dates. Without this the PDF embeds the
	// wall-clock time and repeated downloads of the same analysis differ.
	epoch := time.Unix(0, 0)
	pdf.SetCreationDate(epoch)
	pdf.SetModificationDate(epoch)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", titleFontSize)
	pdf.MultiCell(0, 12, tr(reportTitle), "", "C", false)
	pdf.Ln(4)

	sectionHeading := func(text string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, tr(text), "", "L", false)
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", bodyFontSize)
	}
	body := func(text string) {
		pdf.MultiCell(0, 6, tr(text), "", "L", false)
	}
	bullets := func(items []string) {
		for _, item := range items {
			pdf.MultiCell(0, 6, tr(bulletPrefix+item), "", "L", false)
		}
	}

	sectionHeading("Content Overview")
	body(fmt.Sprintf("Style: %s", a.ContentStyle))
	pdf.Ln(2)
	body("Themes:")
	bullets(a.Themes)
	pdf.Ln(4)

	sectionHeading("Values & Tone")
	body(fmt.Sprintf("Tone: %s", a.ValuesAndTone.Tone))
	pdf.Ln(2)
	body("Values:")
	bullets(a.ValuesAndTone.Values)
	pdf.Ln(4)

	sectionHeading("Estimated Audience")
	audienceRow := func(label, value string) {
		pdf.SetFont("Helvetica", "B", bodyFontSize)
		pdf.CellFormat(45, 7, tr(label), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.CellFormat(0, 7, tr(value), "1", 1, "L", false, 0, "")
	}
	audienceRow("Age Range", a.TargetAudience.AgeRange)
	audienceRow("Gender", a.TargetAudience.Gender)
	audienceRow("Location", a.TargetAudience.Location)
	audienceRow("Interests", strings.Join(a.TargetAudience.Interests, ", "))
	pdf.Ln(4)

	sectionHeading("Engagement")
	body(a.Engagement)
	pdf.Ln(4)

	sectionHeading("Platforms & Niches")
	body(fmt.Sprintf("Primary platforms: %s", strings.Join(a.PrimaryPlatforms, ", ")))
	body(fmt.Sprintf("Market niches: %s", strings.Join(SortedNiches(a), ", ")))
	body(fmt.Sprintf("Prior collaborations: %s", a.PriorCollaborations))
	pdf.Ln(4)

	sectionHeading("Recommended Brand Matches")
	for _, match := range a.BrandMatches {
		pdf.SetFont("Helvetica", "B", bodyFontSize)
		pdf.MultiCell(0, 6, tr(match.BrandType), "", "L", false)
		pdf.SetFont("Helvetica", "", bodyFontSize)
		body(fmt.Sprintf("Examples: %s", strings.Join(match.Examples, ", ")))
		body(match.Justification)
		pdf.Ln(2)
	}
	pdf.Ln(2)

	sectionHeading("Collaboration Formats")
	bullets(a.CollaborationTypes)
	pdf.Ln(4)

	sectionHeading("Brand Image Considerations")
	body(a.BrandImageConsiderations)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
