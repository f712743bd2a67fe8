package models

import (
	"time"
)

// User 用户表
// 用户注册后不可修改，也不会被本服务删除
type User struct {
	ID            uint      `gorm:"primaryKey;column:user_id" json:"id"`
	FirstName     string    `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName      string    `gorm:"column:last_name;size:100" json:"last_name,omitempty"`
	Email         string    `gorm:"column:email;size:200" json:"email,omitempty"`
	Age           int       `gorm:"column:age" json:"age,omitempty"`
	Gender        string    `gorm:"column:gender;size:20" json:"gender,omitempty"`
	State         string    `gorm:"column:state;size:100" json:"state,omitempty"`
	Address       string    `gorm:"column:address;size:255" json:"address,omitempty"`
	PostalCode    string    `gorm:"column:postal_code;size:20" json:"postal_code,omitempty"`
	City          string    `gorm:"column:city;size:100" json:"city,omitempty"`
	Country       string    `gorm:"column:country;size:100" json:"country,omitempty"`
	Latitude      float64   `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude     float64   `gorm:"column:longitude" json:"longitude,omitempty"`
	TrafficSource string    `gorm:"column:traffic_source;size:100" json:"traffic_source,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
