package main

import (
	"fmt"
	"time"

	"pompa-press/internal/entity"
	"pompa-press/internal/model"
	"pompa-press/pkg/config"
	"pompa-press/pkg/database"
	"pompa-press/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	authors := []model.AuthorModel{
		{Nombre: "Florencia", Apellido: "Paz", Correo: "flor@revistapompa.com"},
		{Nombre: "Julián", Apellido: "Reyes", Correo: "julian@revistapompa.com"},
	}
	authorIDs := make([]string, 0, len(authors))
	for i := range authors {
		var existing model.AuthorModel
		if err := db.Where("correo = ?", authors[i].Correo).First(&existing).Error; err == nil {
			log.Info("Author %s already exists, skipping", existing.Correo)
			authorIDs = append(authorIDs, existing.ID)
			continue
		}
		if err := db.Create(&authors[i]).Error; err != nil {
			return fmt.Errorf("failed to create author %s: %w", authors[i].Correo, err)
		}
		log.Info("Created author: %s %s", authors[i].Nombre, authors[i].Apellido)
		authorIDs = append(authorIDs, authors[i].ID)
	}

	numeroUno := 1
	contents := []model.ContentModel{
		{
			Categoria:        string(entity.CategoryEditorials),
			Titulo:           "Luz de invierno",
			Slug:             "luz-de-invierno",
			AutorID:          authorIDs[0],
			FechaPublicacion: time.Now().AddDate(0, 0, -7),
			Estado:           string(entity.StatePublicado),
		},
		{
			Categoria:        string(entity.CategoryIssues),
			Titulo:           "Pompa Issue 1",
			Slug:             "pompa-issue-1",
			AutorID:          authorIDs[1],
			FechaPublicacion: time.Now().AddDate(0, 0, -30),
			Estado:           string(entity.StatePublicado),
			NumeroIssue:      &numeroUno,
			NombreModelo:     "Mora",
		},
		{
			Categoria:             string(entity.CategoryMadeInArg),
			Titulo:                "Botas de San Telmo",
			Slug:                  "botas-de-san-telmo",
			AutorID:               authorIDs[0],
			FechaPublicacion:      time.Now().AddDate(0, 0, -3),
			Estado:                string(entity.StateBorrador),
			SubcategoriaMadeinarg: string(entity.SubcategoryCalzado),
			TagsMarcas:            "sibyl vane,mishka",
		},
	}
	for i := range contents {
		var existing model.ContentModel
		if err := db.Where("slug = ?", contents[i].Slug).First(&existing).Error; err == nil {
			log.Info("Content %s already exists, skipping", existing.Slug)
			continue
		}
		if err := db.Create(&contents[i]).Error; err != nil {
			return fmt.Errorf("failed to create content %s: %w", contents[i].Slug, err)
		}
		log.Info("Created content: %s (%s)", contents[i].Titulo, contents[i].Categoria)
	}

	subscribers := []model.SuscriptorModel{
		{Nombre: "Alicia", Email: "alicia@test.com", Activo: true, SuscritoEditorials: true, SuscritoIssues: true, SuscritoMadeinarg: true, SuscritoNews: true, SuscritoClubPompa: true},
		{Nombre: "Bruno", Email: "bruno@test.com", Activo: true, SuscritoEditorials: true, SuscritoIssues: true, SuscritoNews: true},
		{Nombre: "Celeste", Email: "celeste@test.com", Activo: false, SuscritoEditorials: true},
	}
	for i := range subscribers {
		var existing model.SuscriptorModel
		if err := db.Where("email = ?", subscribers[i].Email).First(&existing).Error; err == nil {
			log.Info("Subscriber %s already exists, skipping", existing.Email)
			continue
		}
		if err := db.Create(&subscribers[i]).Error; err != nil {
			return fmt.Errorf("failed to create subscriber %s: %w", subscribers[i].Email, err)
		}
		log.Info("Created subscriber: %s", subscribers[i].Email)
	}

	return nil
}
