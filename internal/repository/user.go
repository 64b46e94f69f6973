package repository

import (
	"github.com/jianshanacademy/camp-portal/internal/domain/user"
	"gorm.io/gorm"
)

type UserRepo interface {
	GetAllUsers() ([]user.User, error)
	GetUserByID(id uint) (user.User, error)
	GetUserByUsername(username string) (user.User, error)
	SaveUser(user *user.User) error
	SetAdmin(id uint, isAdmin bool) error
	DeleteUser(id uint) error
	WithTx(tx *gorm.DB) UserRepo
}

type DBUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *DBUserRepo {
	return &DBUserRepo{
		db: db,
	}
}

func (r *DBUserRepo) GetAllUsers() ([]user.User, error) {
	var users []user.User
	err := r.db.Order("u_id asc").Find(&users).Error
	return users, err
}

func (r *DBUserRepo) GetUserByID(id uint) (user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBUserRepo) GetUserByUsername(username string) (user.User, error) {
	var u user.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBUserRepo) SaveUser(user *user.User) error {
	return r.db.Save(user).Error
}

func (r *DBUserRepo) SetAdmin(id uint, isAdmin bool) error {
	return r.db.Model(&user.User{}).Where("u_id = ?", id).Update("is_admin", isAdmin).Error
}

func (r *DBUserRepo) DeleteUser(id uint) error {
	return r.db.Delete(&user.User{}, id).Error
}

func (r *DBUserRepo) WithTx(tx *gorm.DB) UserRepo {
	if tx == nil {
		return r
	}
	return &DBUserRepo{
		db: tx,
	}
}
