package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo *UserRepo
	blogRepo *BlogRepo
}

// New initializes a Database with each repository sharing the same GORM
// instance.
func New(db *gorm.DB) Database {
	return Database{
		userRepo: NewUserRepo(db),
		blogRepo: NewBlogRepo(db),
	}
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}
