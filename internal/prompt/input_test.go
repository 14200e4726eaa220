package prompt

import (
	"testing"

	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestInputFromRequest(t *testing.T) {
	input := InputFromRequest(&v1.ProjectInput{
		Title:              "Chat App",
		ProjectDescription: "A realtime chat tool",
		TechStack:          []string{"React"},
		Pages:              []*v1.Page{{Name: "Inbox", Functionality: "Lists conversations"}, nil},
	})

	assert.Equal(t, Input{
		Title:              "Chat App",
		ProjectDescription: "A realtime chat tool",
		TechStack:          []string{"React"},
		Pages:              []Page{{Name: "Inbox", Functionality: "Lists conversations"}},
	}, input)
}

func TestInputFromPRD_OrdersSections(t *testing.T) {
	prd := &model.PRD{
		Title:              "Chat App",
		ProjectDescription: "A realtime chat tool",
		TechStack:          []string{"React", "Node.js"},
		Sections: []*model.Section{
			{Title: "Settings", Content: "Edit profile", Order: 1},
			{Title: "Inbox", Content: "Lists conversations", Order: 0},
		},
	}

	input := InputFromPRD(prd)
	assert.Equal(t, []Page{
		{Name: "Inbox", Functionality: "Lists conversations"},
		{Name: "Settings", Functionality: "Edit profile"},
	}, input.Pages)
	assert.Equal(t, "Settings", prd.Sections[0].Title, "the stored order must not be modified")
	assert.Equal(t, BuildPRDPrompt(chatApp()), BuildPRDPrompt(input))
}
