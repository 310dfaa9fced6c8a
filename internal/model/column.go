package model

type Column struct {
	ID       ID     `gorm:"column:id;primaryKey"`
	BoardID  ID     `gorm:"column:board_id"`
	Name     string `gorm:"column:name"`
	Color    string `gorm:"column:color"`
	Position int    `gorm:"column:position"`
}

func (Column) TableName() string { return "columns" }

// FormattedName is the button label used in column-selector keyboards.
func (c *Column) FormattedName() string {
	return c.Name
}
