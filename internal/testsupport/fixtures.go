package testsupport

import "moviedb/internal/movie"

// Inception returns a fully populated fixture record.
func Inception() movie.Movie {
	return movie.Movie{
		Title:    "Inception",
		Year:     "2010",
		Genre:    "Action, Adventure, Sci-Fi",
		Actors:   "Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page",
		Director: "Christopher Nolan",
		Type:     movie.TypeMovie,
		Plot:     "A thief who steals corporate secrets through dream-sharing technology.",
	}
}

// Dune returns the 2021 adaptation.
func Dune() movie.Movie {
	return movie.Movie{
		Title:    "Dune",
		Year:     "2021",
		Genre:    "Action, Adventure, Drama",
		Actors:   "Timothée Chalamet, Rebecca Ferguson, Zendaya",
		Director: "Denis Villeneuve",
		Type:     movie.TypeMovie,
		Plot:     "A noble family becomes embroiled in a war for control over the galaxy's most valuable asset.",
	}
}

// TheMatrix returns the 1999 original.
func TheMatrix() movie.Movie {
	return movie.Movie{
		Title:    "The Matrix",
		Year:     "1999",
		Genre:    "Action, Sci-Fi",
		Actors:   "Keanu Reeves, Laurence Fishburne, Carrie-Anne Moss",
		Director: "Lana Wachowski, Lilly Wachowski",
		Type:     movie.TypeMovie,
		Plot:     "A computer hacker learns about the true nature of reality.",
	}
}

// BreakingBad returns a series record whose year is a range.
func BreakingBad() movie.Movie {
	return movie.Movie{
		Title:    "Breaking Bad",
		Year:     "2008–2013",
		Genre:    "Crime, Drama, Thriller",
		Actors:   "Bryan Cranston, Aaron Paul, Anna Gunn",
		Type:     movie.TypeSeries,
	}
}
