package models

type BibleBook struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	HebrewName   string `json:"hebrewName"`
	Abbreviation string `json:"abbreviation"`
	ChapterCount int    `json:"chapterCount"`
	Testament    string `json:"testament"`
	OrderIndex   int    `json:"orderIndex"`
}
