package prompt

import (
	"sort"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/model"
)

// InputFromRequest copies the submitted project description. Nil pages are skipped.
func InputFromRequest(in *v1.ProjectInput) Input {
	input := Input{
		Title:              in.Title,
		ProjectDescription: in.ProjectDescription,
		TechStack:          in.TechStack,
		Pages:              make([]Page, 0, len(in.Pages)),
	}
	for _, page := range in.Pages {
		if page == nil {
			continue
		}
		input.Pages = append(input.Pages, Page{Name: page.Name, Functionality: page.Functionality})
	}

	return input
}

// InputFromPRD rebuilds the input of a stored PRD from its current fields and
// its sections in order.
func InputFromPRD(prd *model.PRD) Input {
	sections := make([]*model.Section, len(prd.Sections))
	copy(sections, prd.Sections)
	sort.Slice(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })

	input := Input{
		Title:              prd.Title,
		ProjectDescription: prd.ProjectDescription,
		TechStack:          prd.TechStack,
		Pages:              make([]Page, 0, len(sections)),
	}
	for _, section := range sections {
		input.Pages = append(input.Pages, Page{Name: section.Title, Functionality: section.Content})
	}

	return input
}
