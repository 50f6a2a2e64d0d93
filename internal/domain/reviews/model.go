package reviews

import "time"

type Review struct {
	ID        int64
	UserID    int64
	MasterID  int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}
