package helpers

// Page mirrors the paginator envelope the admin UI already consumes:
// data plus total/per_page/current_page/last_page/from/to.
type Page struct {
	Data        interface{} `json:"data"`
	Total       int64       `json:"total"`
	PerPage     int         `json:"per_page"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	From        int         `json:"from"`
	To          int         `json:"to"`
}

func NewPage(data interface{}, total int64, perPage, currentPage, count int) Page {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if count > 0 {
		from = (currentPage-1)*perPage + 1
		to = from + count - 1
	}

	return Page{
		Data:        data,
		Total:       total,
		PerPage:     perPage,
		CurrentPage: currentPage,
		LastPage:    lastPage,
		From:        from,
		To:          to,
	}
}
