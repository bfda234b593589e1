package entity

type User struct {
	Base
	Username     string `db:"username"`
	FullName     string `db:"full_name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
}
