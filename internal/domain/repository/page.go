package repository

// Page limita los listados. Limit <= 0 usa el default del repositorio.
type Page struct {
	Limit  int
	Offset int
}
