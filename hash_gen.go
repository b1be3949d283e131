package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	password := []byte("admin") // 你要设置的密码
	hashedPassword, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	fmt.Printf("Email: admin@civicfix.local\n")
	fmt.Printf("Hashed Password: %s\n", string(hashedPassword))
}

// INSERT INTO users (name, email, password_hash, role, badge_level, points, created_at, updated_at)
// VALUES ('Administrator', 'admin@civicfix.local', '<hash>', 'Admin', 'Bronze', 0, strftime('%Y-%m-%d %H:%M:%S', 'now'), strftime('%Y-%m-%d %H:%M:%S', 'now'));
