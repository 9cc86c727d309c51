package entity

import "time"

// Subscriber is an opt-in newsletter recipient with independent per-category
// preferences. Unsubscribing deactivates the row; re-subscribing with the
// same email reactivates it.
type Subscriber struct {
	ID                 string    `json:"id"`
	Nombre             string    `json:"nombre"`
	Email              string    `json:"email"`
	Activo             bool      `json:"activo"`
	TokenDesuscripcion string    `json:"-"`
	FechaSuscripcion   time.Time `json:"fecha_suscripcion"`

	SuscritoEditorials bool `json:"suscrito_editorials"`
	SuscritoIssues     bool `json:"suscrito_issues"`
	SuscritoMadeInArg  bool `json:"suscrito_madeinarg"`
	SuscritoNews       bool `json:"suscrito_news"`
	SuscritoClubPompa  bool `json:"suscrito_club_pompa"`
}

// CategoryFlags is the per-category opt-in set as the subscription boundary
// exchanges it.
type CategoryFlags struct {
	Editorials bool `json:"editorials"`
	Issues     bool `json:"issues"`
	MadeInArg  bool `json:"madeinarg"`
	News       bool `json:"news"`
	ClubPompa  bool `json:"club_pompa"`
}

// AllCategories opts into everything, the default for new subscribers.
func AllCategories() CategoryFlags {
	return CategoryFlags{Editorials: true, Issues: true, MadeInArg: true, News: true, ClubPompa: true}
}

// SubscribedTo reports whether the subscriber opted into a category.
func (s *Subscriber) SubscribedTo(c Category) bool {
	switch c {
	case CategoryEditorials:
		return s.SuscritoEditorials
	case CategoryIssues:
		return s.SuscritoIssues
	case CategoryMadeInArg:
		return s.SuscritoMadeInArg
	case CategoryNews:
		return s.SuscritoNews
	case CategoryClubPompa:
		return s.SuscritoClubPompa
	}
	return false
}

// ApplyFlags overwrites the per-category opt-ins.
func (s *Subscriber) ApplyFlags(f CategoryFlags) {
	s.SuscritoEditorials = f.Editorials
	s.SuscritoIssues = f.Issues
	s.SuscritoMadeInArg = f.MadeInArg
	s.SuscritoNews = f.News
	s.SuscritoClubPompa = f.ClubPompa
}
