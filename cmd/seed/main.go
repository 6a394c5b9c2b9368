package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"parkhub/internal/database"
	"parkhub/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "parkhub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM parking_slots")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@parkhub.io",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		FirstName:    "Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@parkhub.io / admin123")

	attendantHash, _ := bcrypt.GenerateFromPassword([]byte("attendant123"), bcrypt.DefaultCost)
	attendant := domain.User{
		Email:        "attendant@parkhub.io",
		PasswordHash: string(attendantHash),
		Role:         domain.RoleAttendant,
		FirstName:    "Gate",
		LastName:     "Attendant",
	}
	db.Create(&attendant)

	drivers := []domain.User{}
	driverEmails := []string{"alice@mail.com", "bob@mail.com", "carol@mail.com"}
	for i, email := range driverEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("driver123"), bcrypt.DefaultCost)
		driver := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleUser,
			FirstName:    fmt.Sprintf("Driver%d", i+1),
		}
		db.Create(&driver)
		drivers = append(drivers, driver)
	}

	// ================== VEHICLES ==================
	log.Println("Creating vehicles...")
	types := []domain.VehicleType{domain.VehicleCar, domain.VehicleMotorcycle, domain.VehicleTruck}
	for i, driver := range drivers {
		for j := 0; j < 2; j++ {
			v := domain.Vehicle{
				UserID:      driver.ID,
				PlateNumber: fmt.Sprintf("KA-%02d-%04d", i+1, 1000+i*10+j),
				Type:        types[(i+j)%len(types)],
			}
			db.Create(&v)
		}
	}

	// ================== SLOTS ==================
	log.Println("Creating parking slots...")
	count := 0
	for floor := 1; floor <= 3; floor++ {
		for n := 1; n <= 10; n++ {
			slot := domain.ParkingSlot{
				Number:      fmt.Sprintf("F%d-%02d", floor, n),
				Floor:       floor,
				IsAvailable: true,
			}
			db.Create(&slot)
			count++
		}
	}
	log.Printf("Created %d slots across 3 floors", count)

	log.Println("Seed completed!")
	log.Println("Test accounts:")
	log.Println("Admin:     admin@parkhub.io / admin123")
	log.Println("Attendant: attendant@parkhub.io / attendant123")
	log.Println("Drivers:   alice@mail.com, bob@mail.com, carol@mail.com / driver123")
}
