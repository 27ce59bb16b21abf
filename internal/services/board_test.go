package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/tasklane/tasklane/internal/models"
)

func TestBoardService_Create_EmptyName(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(&CreateBoardRequest{Name: name}, owner.ID)
		assertAppError(t, err, http.StatusBadRequest)
	}
}

func TestBoardService_Create_NoRosterRowForOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")

	board, err := svc.Create(&CreateBoardRequest{Name: "Sprint"}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got := memberCount(t, db, board.ID); got != 0 {
		t.Errorf("owner should have no membership row, found %d rows", got)
	}
	if board.Role != "admin" {
		t.Errorf("owner role label = %q, expected %q", board.Role, "admin")
	}
	if board.Owner.Email != "owner@example.com" {
		t.Errorf("owner email = %q", board.Owner.Email)
	}
}

func TestBoardService_Create_UnknownInviteIsNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")
	createUser(t, db, "a@x.com", "Alice")

	board, err := svc.Create(&CreateBoardRequest{
		Name:    "Sprint",
		Members: []string{"a@x.com", "ghost@x.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(board.Members) != 1 {
		t.Fatalf("expected 1 roster member, got %d", len(board.Members))
	}
	if board.Members[0].Email != "a@x.com" || board.Members[0].Role != "member" {
		t.Errorf("unexpected roster entry %+v", board.Members[0])
	}
	if len(board.UnknownEmails) != 1 || board.UnknownEmails[0] != "ghost@x.com" {
		t.Errorf("UnknownEmails = %v, expected [ghost@x.com]", board.UnknownEmails)
	}
	if got := memberCount(t, db, board.ID); got != 1 {
		t.Errorf("expected 1 membership row, got %d", got)
	}
}

func TestBoardService_Create_DuplicateInvite(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")
	createUser(t, db, "a@x.com", "Alice")

	board, err := svc.Create(&CreateBoardRequest{
		Name:    "Sprint",
		Members: []string{"a@x.com", "A@X.com", " a@x.com "},
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got := memberCount(t, db, board.ID); got != 1 {
		t.Errorf("duplicate invites should yield exactly 1 membership row, got %d", got)
	}
}

func TestBoardService_Create_OwnerSelfInviteSkipped(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")

	board, err := svc.Create(&CreateBoardRequest{
		Name:    "Solo",
		Members: []string{"owner@example.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if got := memberCount(t, db, board.ID); got != 0 {
		t.Errorf("self-invite should not create a roster row, got %d", got)
	}
	if len(board.UnknownEmails) != 0 {
		t.Errorf("owner's own email is not unknown, got %v", board.UnknownEmails)
	}
}

func TestBoardService_Get_VisibilityBoundary(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")
	member := createUser(t, db, "member@example.com", "Member")
	outsider := createUser(t, db, "outsider@example.com", "Outsider")

	board, err := svc.Create(&CreateBoardRequest{
		Name:    "Sprint",
		Members: []string{"member@example.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Owner and member can view
	if _, err := svc.Get(board.ID, owner.ID); err != nil {
		t.Errorf("owner Get() error = %v", err)
	}
	got, err := svc.Get(board.ID, member.ID)
	if err != nil {
		t.Fatalf("member Get() error = %v", err)
	}
	if got.Role != "member" {
		t.Errorf("member role label = %q, expected %q", got.Role, "member")
	}

	// A user with no relation to the board has zero visibility
	_, err = svc.Get(board.ID, outsider.ID)
	assertAppError(t, err, http.StatusForbidden)

	// Missing board
	_, err = svc.Get(99999, owner.ID)
	assertAppError(t, err, http.StatusNotFound)
}

func TestBoardService_Delete_Permissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")
	member := createUser(t, db, "member@example.com", "Member")
	admin := createUser(t, db, "admin@example.com", "Admin")

	board, err := svc.Create(&CreateBoardRequest{
		Name:    "Sprint",
		Members: []string{"member@example.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := db.Create(&models.BoardMember{
		BoardID: board.ID,
		UserID:  admin.ID,
		Role:    models.RoleAdmin,
	}).Error; err != nil {
		t.Fatalf("failed to add admin member: %v", err)
	}

	// A plain member may not delete
	assertAppError(t, svc.Delete(board.ID, member.ID), http.StatusForbidden)

	// An admin member may
	if err := svc.Delete(board.ID, admin.ID); err != nil {
		t.Errorf("admin Delete() error = %v", err)
	}

	// Owner may delete their own board
	board2, _ := svc.Create(&CreateBoardRequest{Name: "Second"}, owner.ID)
	if err := svc.Delete(board2.ID, owner.ID); err != nil {
		t.Errorf("owner Delete() error = %v", err)
	}
}

func TestBoardService_Delete_Cascade(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	lists := NewListService(db)
	owner := createUser(t, db, "owner@example.com", "Owner")
	createUser(t, db, "a@x.com", "Alice")
	b := createUser(t, db, "b@x.com", "Bob")

	board, err := svc.Create(&CreateBoardRequest{
		Name:    "Sprint",
		Members: []string{"a@x.com", "b@x.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for _, title := range []string{"Todo", "Doing", "Done"} {
		if _, err := lists.Create(board.ID, owner.ID, &CreateListRequest{Name: title}); err != nil {
			t.Fatalf("Create list %q error = %v", title, err)
		}
	}

	if err := svc.Delete(board.ID, owner.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if got := memberCount(t, db, board.ID); got != 0 {
		t.Errorf("expected 0 membership rows after delete, got %d", got)
	}
	var listCount int64
	db.Model(&models.List{}).Where("board_id = ?", board.ID).Count(&listCount)
	if listCount != 0 {
		t.Errorf("expected 0 list rows after delete, got %d", listCount)
	}

	// A former member now sees not-found, not forbidden
	_, err = svc.Get(board.ID, b.ID)
	assertAppError(t, err, http.StatusNotFound)
}

func TestBoardService_List_RolesAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)
	alice := createUser(t, db, "alice@example.com", "Alice")
	bob := createUser(t, db, "bob@example.com", "Bob")

	owned, err := svc.Create(&CreateBoardRequest{Name: "Mine"}, alice.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	shared, err := svc.Create(&CreateBoardRequest{
		Name:    "Bob's",
		Members: []string{"alice@example.com"},
	}, bob.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Make the shared board the most recently touched one
	db.Model(&models.Board{}).Where("id = ?", owned.ID).
		UpdateColumn("updated_at", time.Now().Add(-time.Hour))

	boards, err := svc.List(alice.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(boards) != 2 {
		t.Fatalf("expected 2 boards, got %d", len(boards))
	}
	if boards[0].ID != shared.ID {
		t.Errorf("expected most recently updated board first, got id %d", boards[0].ID)
	}
	for _, b := range boards {
		switch b.ID {
		case owned.ID:
			if b.Role != "admin" {
				t.Errorf("owned board role = %q, expected %q", b.Role, "admin")
			}
		case shared.ID:
			if b.Role != "member" {
				t.Errorf("shared board role = %q, expected %q", b.Role, "member")
			}
		}
	}

	// Bob does not see Alice's board
	bobBoards, err := svc.List(bob.ID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(bobBoards) != 1 || bobBoards[0].ID != shared.ID {
		t.Errorf("bob should only see his own board, got %d boards", len(bobBoards))
	}
}
