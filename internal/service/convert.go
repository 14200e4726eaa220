package service

import (
	v1 "github.com/emrgen/prd/apis/v1"
	"github.com/emrgen/prd/internal/model"
)

func toUser(u *model.User) *v1.User {
	if u == nil {
		return nil
	}
	return &v1.User{
		Id:          u.ID,
		ClerkUserId: u.ClerkUserID,
		Email:       u.Email,
		Name:        u.Name,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toSection(s *model.Section) *v1.Section {
	return &v1.Section{
		Id:        s.ID,
		PrdId:     s.PRDID,
		Title:     s.Title,
		Order:     s.Order,
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSections(sections []*model.Section) []*v1.Section {
	out := make([]*v1.Section, 0, len(sections))
	for _, s := range sections {
		out = append(out, toSection(s))
	}
	return out
}

func toContent(c *model.DocumentContent) *v1.DocumentContent {
	if c == nil {
		return nil
	}
	return &v1.DocumentContent{
		Id:              c.ID,
		PrdId:           c.PRDID,
		MarkdownContent: c.MarkdownContent,
		HtmlContent:     c.HTMLContent,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toPRD(p *model.PRD) *v1.PRD {
	prd := &v1.PRD{
		Id:                 p.ID,
		Title:              p.Title,
		ProjectDescription: p.ProjectDescription,
		TechStack:          p.TechStack,
		Status:             v1.PRDStatus(p.Status),
		AuthorId:           p.AuthorID,
		PageCount:          p.PageCount,
		IsPublic:           p.IsPublic,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		LastEditedAt:       p.LastEditedAt,
		Author:             toUser(p.Author),
		CurrentContent:     toContent(p.CurrentContent),
	}
	if prd.TechStack == nil {
		prd.TechStack = []string{}
	}
	if p.Sections != nil {
		prd.Sections = toSections(p.Sections)
	}
	return prd
}

func toComment(c *model.Comment) *v1.Comment {
	return &v1.Comment{
		Id:        c.ID,
		PrdId:     c.PRDID,
		AuthorId:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
