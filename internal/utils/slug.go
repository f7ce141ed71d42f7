package utils

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// UniqueSlug slugifies title and, if the slug is already taken in the given
// model's table, appends -2, -3, ... until it finds a free one.
func UniqueSlug(db *gorm.DB, model interface{}, title string) (string, error) {
	base := slug.Make(title)

	if base == "" {
		return "", errors.New("title produces an empty slug")
	}

	candidate := base

	for i := 2; ; i++ {
		var count int64

		if err := db.Model(model).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}

		if count == 0 {
			return candidate, nil
		}

		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
