package db

import (
	"time"

	"ecshop/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed は管理者ユーザーとサンプル商品が無ければ投入する。
func Seed(gormDB *gorm.DB) error {
	//管理者ユーザーが無ければ作成
	var adminCount int64
	if err := gormDB.Model(&model.User{}).Where("is_admin = ?", true).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := model.User{
			Username:     "admin",
			Email:        "admin@ecshop.com",
			PasswordHash: string(hash),
			FirstName:    "管理者",
			LastName:     "システム",
			IsAdmin:      true,
			CreatedAt:    time.Now(),
		}
		if err := gormDB.Create(&admin).Error; err != nil {
			return err
		}
		logrus.WithField("username", admin.Username).Warn("default admin user created, change the password")
	}

	//サンプル商品が無ければ投入
	var productCount int64
	if err := gormDB.Model(&model.Product{}).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount == 0 {
		now := time.Now()
		products := []model.Product{
			{Name: "AirPods Pro", Description: "ANC イヤホン", Price: decimal.NewFromInt(39800), Stock: 84, ImageURL: "https://example.com/airpods-pro.jpg", CreatedAt: now},
			{Name: "MacBook Air M3", Description: "13インチ ノートPC", Price: decimal.NewFromInt(164800), Stock: 15, ImageURL: "https://example.com/macbook-air-m3.jpg", CreatedAt: now},
			{Name: "Magic Keyboard", Description: "テンキー付き キーボード", Price: decimal.NewFromInt(19800), Stock: 47, ImageURL: "https://example.com/magic-keyboard.jpg", CreatedAt: now},
			{Name: "iPhone 15 Pro", Description: "A17 Pro チップ", Price: decimal.NewFromInt(159800), Stock: 47, ImageURL: "https://example.com/iphone-15-pro.jpg", CreatedAt: now},
		}
		if err := gormDB.Create(&products).Error; err != nil {
			return err
		}
		logrus.WithField("count", len(products)).Info("sample products seeded")
	}

	return nil
}
