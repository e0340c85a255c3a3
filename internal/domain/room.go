package domain

import "time"

type Room struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Building  string    `json:"building"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
