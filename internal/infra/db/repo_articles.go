package db

import (
	"context"
	"errors"

	"newsroom/internal/domain"

	"gorm.io/gorm"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// FindByID eager-loads the author with a column whitelist so the password
// hash never leaves the repository.
func (r *ArticleRepository) FindByID(ctx context.Context, id uint) (*domain.Article, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model ArticleModel
	err := r.db.WithContext(ctx).
		Preload("Author", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "username", "created_at")
		}).
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	article := articleFromModel(model)
	return &article, nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []ArticleModel
	err := r.db.WithContext(ctx).Order("id").Find(&models).Error
	if err != nil {
		return nil, err
	}
	articles := make([]domain.Article, 0, len(models))
	for _, model := range models {
		articles = append(articles, articleFromModel(model))
	}
	return articles, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	if r.db == nil {
		return errDBUnavailable
	}
	model := ArticleModel{
		Title:    article.Title,
		Body:     article.Body,
		AuthorID: article.AuthorID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	article.ID = model.ID
	article.CreatedAt = model.CreatedAt
	article.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Model(&ArticleModel{}).
		Where("id = ?", article.ID).
		Updates(map[string]any{"title": article.Title, "body": article.Body})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id uint) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).Delete(&ArticleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func articleFromModel(model ArticleModel) domain.Article {
	article := domain.Article{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		AuthorID:  model.AuthorID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.Author != nil {
		author := userFromModel(*model.Author)
		article.Author = &author
	}
	return article
}
