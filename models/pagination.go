package models

// DefaultPageSize and MaxPageSize must match the PageQuery binding tags.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageQuery holds the query parameters of GET /sensor-data.
type PageQuery struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=10" binding:"min=1,max=100"`
}

// SensorPage is the paginated response of GET /sensor-data.
type SensorPage struct {
	Data         []SensorRow `json:"data"`
	Page         int         `json:"page"`
	PageSize     int         `json:"page_size"`
	TotalRecords int64       `json:"total_records"`
	TotalPages   int64       `json:"total_pages"`
}

// TotalPages is ceil(total/pageSize); it is 0 when there are no records.
func TotalPages(total int64, pageSize int) int64 {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return (total + size - 1) / size
}

// Offset returns the number of rows skipped before page.
func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}
