package model

type User struct {
	ID        ID     `gorm:"column:id;primaryKey"`
	AccountID ID     `gorm:"column:account_id"`
	Name      string `gorm:"column:name"`
}

func (User) TableName() string { return "users" }
