package database

import (
	"context"
	"time"

	"campus-services-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(ctx context.Context, name, email, password, role, studentId, department string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}
	hashedStr := string(hashed)

	user := models.User{
		ID:            primitive.NewObjectID(),
		Name:          &name,
		Email:         &email,
		Password:      &hashedStr,
		Role:          role,
		Student_id:    studentId,
		Department:    department,
		Orders:        []string{},
		Xerox_orders:  []string{},
		Queue_history: []models.QueueHistoryEntry{},
		Created_at:    time.Now(),
		Updated_at:    time.Now(),
	}
	user.User_id = user.ID.Hex()

	_, err = OpenCollection(Client, "user").InsertOne(ctx, user)
	return err
}

func seedMenuItem(ctx context.Context, name, description string, price float64, category, image, serviceType string) error {
	available := true
	item := models.MenuItem{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Description:  description,
		Price:        price,
		Category:     category,
		Image:        image,
		Available:    &available,
		Service_type: serviceType,
		Created_at:   time.Now(),
		Updated_at:   time.Now(),
	}
	item.Item_id = item.ID.Hex()

	_, err := OpenCollection(Client, "menuItem").InsertOne(ctx, item)
	return err
}

func seedQueue(ctx context.Context, name, serviceType string, maxCapacity, estimatedWait int) error {
	queue := models.Queue{
		ID:                  primitive.NewObjectID(),
		Name:                name,
		Service_type:        serviceType,
		Current_number:      0,
		Customers:           []models.QueueCustomer{},
		Status:              models.QueueActive,
		Max_capacity:        maxCapacity,
		Estimated_wait_time: estimatedWait,
		Created_at:          time.Now(),
		Updated_at:          time.Now(),
	}
	queue.Queue_id = queue.ID.Hex()

	_, err := OpenCollection(Client, "queue").InsertOne(ctx, queue)
	return err
}

// Seed wipes users, menu items and queues, then loads a small demo data set:
// an admin, a student, sample menu items for both service lines and one
// queue per service line.
func Seed(ctx context.Context) error {
	for _, name := range []string{"user", "menuItem", "queue"} {
		if _, err := OpenCollection(Client, name).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
	}

	if err := seedUser(ctx, "Admin User", "admin@college.com", "admin123", models.RoleAdmin, "ADMIN001", "Administration"); err != nil {
		return err
	}
	if err := seedUser(ctx, "Sample Student", "student@college.com", "student123", models.RoleStudent, "STU001", "Computer Science"); err != nil {
		return err
	}

	menuItems := []struct {
		name, description, category, image, serviceType string
		price                                           float64
	}{
		{"Veg Biryani", "Fragrant basmati rice cooked with aromatic spices and mixed vegetables", "Main Course", "", models.ServiceCanteen, 80},
		{"Chicken Curry", "Tender chicken pieces in rich, spicy curry sauce", "Main Course", "", models.ServiceCanteen, 120},
		{"Masala Dosa", "Crispy rice crepe filled with spiced potato", "Breakfast", "", models.ServiceCanteen, 50},
		{"Samosa", "Deep-fried pastry with spiced potato filling", "Snacks", "", models.ServiceCanteen, 15},
		{"Masala Chai", "Spiced milk tea", "Beverages", "", models.ServiceCanteen, 10},
		{"Black & White Printing", "Per-page black and white printing", "Printing", "", models.ServiceXerox, 2},
		{"Color Printing", "Per-page color printing", "Printing", "", models.ServiceXerox, 4},
		{"Spiral Binding", "Spiral binding for documents", "Binding", "", models.ServiceXerox, 15},
	}
	for _, item := range menuItems {
		if err := seedMenuItem(ctx, item.name, item.description, item.price, item.category, item.image, item.serviceType); err != nil {
			return err
		}
	}

	if err := seedQueue(ctx, "Canteen Counter", models.ServiceCanteen, 100, 5); err != nil {
		return err
	}
	return seedQueue(ctx, "Xerox Counter", models.ServiceXerox, 50, 10)
}
