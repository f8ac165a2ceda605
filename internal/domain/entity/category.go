package entity

const RootCategoryLevel = 1

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
	Level    int    `json:"level"`
}
