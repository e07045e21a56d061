package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string

	Credits CreditLedger     `gorm:"foreignKey:UserID"`
	Models  []Model          `gorm:"foreignKey:UserID"`
	Images  []GeneratedImage `gorm:"foreignKey:UserID"`
}
