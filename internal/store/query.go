package store

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var prdOrderColumns = map[string]string{
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
	"lastEditedAt": "last_edited_at",
	"title":        "title",
	"status":       "status",
	"pageCount":    "page_count",
}

func filterPRDs(f PRDFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.AuthorID != "" {
			db = db.Where("author_id = ?", f.AuthorID)
		}
		if len(f.Statuses) > 0 {
			db = db.Where("status IN ?", f.Statuses)
		}
		if search := strings.TrimSpace(f.Search); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			db = db.Where("(LOWER(title) LIKE ? OR LOWER(project_description) LIKE ?)", like, like)
		}
		if f.IsPublic != nil {
			db = db.Where("is_public = ?", *f.IsPublic)
		}
		if f.CreatedAfter != nil {
			db = db.Where("created_at >= ?", *f.CreatedAfter)
		}
		if f.CreatedBefore != nil {
			db = db.Where("created_at < ?", *f.CreatedBefore)
		}
		return db
	}
}

func paginate(o ListOptions) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if o.Skip > 0 {
			db = db.Offset(o.Skip)
		}
		return db.Limit(o.limit())
	}
}

// orderPRDs sorts by the requested field, then by id so pages are stable.
func orderPRDs(o ListOptions) (func(db *gorm.DB) *gorm.DB, error) {
	field := o.OrderBy
	if field == "" {
		field = "updatedAt"
	}
	col, ok := prdOrderColumns[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrderBy, o.OrderBy)
	}

	sql := "? ASC"
	if o.Desc {
		sql = "? DESC"
	}
	switch o.Nulls {
	case NullsFirst:
		sql += " NULLS FIRST"
	case NullsLast:
		sql += " NULLS LAST"
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                sql,
			Vars:               []interface{}{clause.Column{Name: col}},
			WithoutParentheses: true,
		}}).Order("id")
	}, nil
}

func preloadPRD(db *gorm.DB, include Include) *gorm.DB {
	if include.Author {
		db = db.Preload("Author")
	}
	if include.Sections {
		db = db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	}
	if include.Content {
		db = db.Preload("CurrentContent")
	}
	if include.Versions {
		db = db.Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version_number ASC")
		})
	}
	if include.Comments {
		db = db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}
	return db
}
