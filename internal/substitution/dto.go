package substitution

type CreateSubstitutionDTO struct {
	BadHabit  string `json:"badHabit"`
	GoodHabit string `json:"goodHabit"`
	Notes     string `json:"notes"`
}

type UpdateSubstitutionDTO struct {
	BadHabit  *string `json:"badHabit"`
	GoodHabit *string `json:"goodHabit"`
	Notes     *string `json:"notes"`
}
