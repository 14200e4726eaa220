package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emrgen/prd/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

// translate maps driver errors onto the store errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func (g *GormStore) CreateUser(ctx context.Context, user *model.User) error {
	return translate(g.db.WithContext(ctx).Create(user).Error)
}

func (g *GormStore) UpsertUser(ctx context.Context, user *model.User) error {
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clerk_user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return translate(err)
	}

	return translate(g.db.WithContext(ctx).Where("clerk_user_id = ?", user.ClerkUserID).First(user).Error)
}

func (g *GormStore) GetUserByClerkID(ctx context.Context, clerkUserID string) (*model.User, error) {
	var user model.User
	if err := g.db.WithContext(ctx).Where("clerk_user_id = ?", clerkUserID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (g *GormStore) CreatePRD(ctx context.Context, prd *model.PRD) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(prd).Error)
}

func (g *GormStore) GetPRD(ctx context.Context, id string, include Include) (*model.PRD, error) {
	var prd model.PRD
	err := preloadPRD(g.db.WithContext(ctx), include).Where("id = ?", id).First(&prd).Error
	if err != nil {
		return nil, translate(err)
	}
	return &prd, nil
}

func (g *GormStore) ListPRDs(ctx context.Context, filter PRDFilter, opts ListOptions, include Include) ([]*model.PRD, int64, error) {
	order, err := orderPRDs(opts)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	db := g.db.WithContext(ctx)
	if err := db.Model(&model.PRD{}).Scopes(filterPRDs(filter)).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	prds := make([]*model.PRD, 0)
	if total == 0 {
		return prds, 0, nil
	}

	err = preloadPRD(db, include).Scopes(filterPRDs(filter), order, paginate(opts)).Find(&prds).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return prds, total, nil
}

func (g *GormStore) UpdatePRD(ctx context.Context, prd *model.PRD) error {
	res := g.db.WithContext(ctx).Omit(clause.Associations).Save(prd)
	if res.Error != nil {
		return translate(res.Error)
	}
	return nil
}

func (g *GormStore) TouchPRD(ctx context.Context, id string, at time.Time) error {
	res := g.db.WithContext(ctx).Model(&model.PRD{}).Where("id = ?", id).Update("last_edited_at", at)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) DeletePRD(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, related := range []interface{}{&model.Comment{}, &model.Version{}, &model.DocumentContent{}, &model.Section{}} {
			if err := tx.Where("prd_id = ?", id).Delete(related).Error; err != nil {
				return translate(err)
			}
		}

		res := tx.Where("id = ?", id).Delete(&model.PRD{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		logrus.Infof("deleted prd %s", id)
		return nil
	})
}

func (g *GormStore) CountPRDsByStatus(ctx context.Context, filter PRDFilter) (map[model.Status]int64, error) {
	var rows []struct {
		Status model.Status
		Count  int64
	}

	err := g.db.WithContext(ctx).Model(&model.PRD{}).
		Scopes(filterPRDs(filter)).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	counts := make(map[model.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (g *GormStore) CreateSections(ctx context.Context, sections []*model.Section) error {
	if len(sections) == 0 {
		return nil
	}
	return translate(g.db.WithContext(ctx).Create(sections).Error)
}

func (g *GormStore) ListSections(ctx context.Context, prdID string) ([]*model.Section, error) {
	sections := make([]*model.Section, 0)
	err := g.db.WithContext(ctx).Where("prd_id = ?", prdID).Order("position ASC").Find(&sections).Error
	return sections, translate(err)
}

func (g *GormStore) GetSection(ctx context.Context, prdID, id string) (*model.Section, error) {
	var section model.Section
	if err := g.db.WithContext(ctx).Where("prd_id = ? AND id = ?", prdID, id).First(&section).Error; err != nil {
		return nil, translate(err)
	}
	return &section, nil
}

func (g *GormStore) UpdateSection(ctx context.Context, section *model.Section) error {
	res := g.db.WithContext(ctx).Model(section).Select("title", "content", "updated_at").Updates(section)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReorderSections first moves every order of the prd to a negative value so
// the unique (prd_id, position) index holds while the final orders are set.
func (g *GormStore) ReorderSections(ctx context.Context, prdID string, ids []string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Section{}).
			Where("prd_id = ?", prdID).
			Update("position", gorm.Expr("-position - 1")).Error
		if err != nil {
			return translate(err)
		}

		for order, id := range ids {
			res := tx.Model(&model.Section{}).
				Where("prd_id = ? AND id = ?", prdID, id).
				Update("position", order)
			if res.Error != nil {
				return translate(res.Error)
			}
			if res.RowsAffected != 1 {
				return fmt.Errorf("%w: section %s", ErrNotFound, id)
			}
		}

		return nil
	})
}

func (g *GormStore) CreateDocumentContent(ctx context.Context, content *model.DocumentContent) error {
	return translate(g.db.WithContext(ctx).Create(content).Error)
}

func (g *GormStore) GetDocumentContent(ctx context.Context, prdID string) (*model.DocumentContent, error) {
	var content model.DocumentContent
	if err := g.db.WithContext(ctx).Where("prd_id = ?", prdID).First(&content).Error; err != nil {
		return nil, translate(err)
	}
	return &content, nil
}

func (g *GormStore) UpsertDocumentContent(ctx context.Context, content *model.DocumentContent) error {
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "prd_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"markdown_content", "html_content", "updated_at"}),
	}).Create(content).Error
	if err != nil {
		return translate(err)
	}

	return translate(g.db.WithContext(ctx).Where("prd_id = ?", content.PRDID).First(content).Error)
}

func (g *GormStore) ListPendingHTML(ctx context.Context, limit int) ([]*model.DocumentContent, error) {
	contents := make([]*model.DocumentContent, 0)
	err := g.db.WithContext(ctx).
		Where("html_content IS NULL OR html_content = ''").
		Order("updated_at ASC").
		Limit(limit).
		Find(&contents).Error
	return contents, translate(err)
}

func (g *GormStore) UpdateHTMLContent(ctx context.Context, id, markdown, html string) (bool, error) {
	res := g.db.WithContext(ctx).Model(&model.DocumentContent{}).
		Where("id = ? AND markdown_content = ?", id, markdown).
		Update("html_content", html)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (g *GormStore) CreateVersion(ctx context.Context, version *model.Version) error {
	return translate(g.db.WithContext(ctx).Create(version).Error)
}

func (g *GormStore) NextVersionNumber(ctx context.Context, prdID string) (int32, error) {
	var current int32
	err := g.db.WithContext(ctx).Model(&model.Version{}).
		Where("prd_id = ?", prdID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, translate(err)
	}
	return current + 1, nil
}

func (g *GormStore) ListVersions(ctx context.Context, prdID string) ([]*model.Version, error) {
	versions := make([]*model.Version, 0)
	err := g.db.WithContext(ctx).Where("prd_id = ?", prdID).Order("version_number ASC").Find(&versions).Error
	return versions, translate(err)
}

func (g *GormStore) GetVersion(ctx context.Context, prdID string, number int32) (*model.Version, error) {
	var version model.Version
	if err := g.db.WithContext(ctx).Where("prd_id = ? AND version_number = ?", prdID, number).First(&version).Error; err != nil {
		return nil, translate(err)
	}
	return &version, nil
}

func (g *GormStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return translate(g.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error)
}

func (g *GormStore) ListComments(ctx context.Context, prdID string, opts ListOptions) ([]*model.Comment, int64, error) {
	var total int64
	db := g.db.WithContext(ctx)
	if err := db.Model(&model.Comment{}).Where("prd_id = ?", prdID).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	comments := make([]*model.Comment, 0)
	err := db.Where("prd_id = ?", prdID).Order("created_at ASC").Order("id").Scopes(paginate(opts)).Find(&comments).Error
	if err != nil {
		return nil, 0, translate(err)
	}

	return comments, total, nil
}

func (g *GormStore) GetComment(ctx context.Context, prdID, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := g.db.WithContext(ctx).Where("prd_id = ? AND id = ?", prdID, id).First(&comment).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (g *GormStore) DeleteComment(ctx context.Context, id string) error {
	res := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}
