package services

import (
	"net/http"
	"testing"

	"github.com/prismhq/prism/internal/models"
)

func TestProjectList_PrivateVisibility(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	insider := seedUser(t, db, "insider")
	bystander := seedUser(t, db, "bystander")
	svc := NewProjectService(db)

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, insider, models.RoleMember)
	seedMember(t, db, workspace, bystander, models.RoleMember)

	if _, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{Name: "Public"}); err != nil {
		t.Fatalf("Create public failed: %v", err)
	}
	if _, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{
		Name: "Secret", IsPrivate: true, Members: []uint{insider.ID},
	}); err != nil {
		t.Fatalf("Create private failed: %v", err)
	}

	// The enrolled member sees both projects.
	projects, err := svc.List(insider.ID, workspace.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("insider should see 2 projects, got %d", len(projects))
	}

	// A workspace member outside the private project sees only the public one.
	projects, err = svc.List(bystander.ID, workspace.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Public" {
		t.Errorf("bystander should see only Public, got %d projects", len(projects))
	}
}

func TestProjectCreate_AdminOnly(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	member := seedUser(t, db, "member")
	svc := NewProjectService(db)

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, member, models.RoleMember)

	_, err := svc.Create(member.ID, workspace.ID, &CreateProjectRequest{Name: "Nope"})
	if appErrorStatus(err) != http.StatusForbidden {
		t.Errorf("member Create: expected forbidden, got %v", err)
	}
}

func TestProjectCreate_PrivateEnrolsCreatorAndSkipsInvalid(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	insider := seedUser(t, db, "insider")
	stranger := seedUser(t, db, "stranger") // not a workspace member
	svc := NewProjectService(db)

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, insider, models.RoleMember)

	project, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{
		Name:      "Secret",
		IsPrivate: true,
		Members:   []uint{insider.ID, stranger.ID, 9999},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var members []models.ProjectMember
	db.Where("project_id = ?", project.ID).Find(&members)

	// insider plus the auto-enrolled creator; the stranger and the unknown id
	// are skipped.
	if len(members) != 2 {
		t.Fatalf("expected 2 project members, got %d", len(members))
	}
	ids := map[uint]bool{}
	for _, m := range members {
		ids[m.MemberID] = true
	}
	if !ids[owner.ID] || !ids[insider.ID] {
		t.Errorf("expected creator and insider enrolled, got %v", ids)
	}
}

func TestProjectGet_PrivateNonMemberForbidden(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	bystander := seedUser(t, db, "bystander")
	svc := NewProjectService(db)

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, bystander, models.RoleMember)

	project, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{Name: "Secret", IsPrivate: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Get(bystander.ID, workspace.ID, project.ID); appErrorStatus(err) != http.StatusForbidden {
		t.Errorf("bystander Get: expected forbidden, got %v", err)
	}

	if _, err := svc.Get(owner.ID, workspace.ID, 9999); appErrorStatus(err) != http.StatusNotFound {
		t.Errorf("missing project: expected not found, got %v", err)
	}
}

func TestProjectUpdate_VisibilityIsOneWay(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	svc := NewProjectService(db)

	workspace := seedWorkspace(t, db, owner, "Acme")

	private, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{Name: "Secret", IsPrivate: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Private to public is allowed.
	public := false
	if _, err := svc.Update(owner.ID, workspace.ID, private.ID, &UpdateProjectRequest{IsPrivate: &public}); err != nil {
		t.Fatalf("private->public failed: %v", err)
	}

	// Public back to private is rejected and leaves the project unchanged.
	backToPrivate := true
	_, err = svc.Update(owner.ID, workspace.ID, private.ID, &UpdateProjectRequest{IsPrivate: &backToPrivate})
	if appErrorStatus(err) != http.StatusBadRequest {
		t.Errorf("public->private: expected validation failure, got %v", err)
	}

	var stored models.Project
	db.First(&stored, private.ID)
	if stored.IsPrivate {
		t.Error("project should still be public after the rejected flip")
	}
}

func TestProjectUpdate_Archive(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	svc := NewProjectService(db)

	workspace := seedWorkspace(t, db, owner, "Acme")
	project, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{Name: "Board"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	archived := true
	if _, err := svc.Update(owner.ID, workspace.ID, project.ID, &UpdateProjectRequest{Archived: &archived}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var stored models.Project
	db.First(&stored, project.ID)
	if !stored.Archived {
		t.Error("project should be archived")
	}
}

func TestProjectAddMember_Validation(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	insider := seedUser(t, db, "insider")
	stranger := seedUser(t, db, "stranger")
	svc := NewProjectService(db)

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, insider, models.RoleMember)

	project, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{Name: "Secret", IsPrivate: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A non-workspace-member cannot be enrolled.
	_, err = svc.AddMember(owner.ID, workspace.ID, project.ID, &AddProjectMemberRequest{MemberID: stranger.ID})
	if appErrorStatus(err) != http.StatusBadRequest {
		t.Errorf("stranger enrolment: expected validation failure, got %v", err)
	}

	if _, err := svc.AddMember(owner.ID, workspace.ID, project.ID, &AddProjectMemberRequest{MemberID: insider.ID}); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	// Enrolling the same member twice is rejected.
	_, err = svc.AddMember(owner.ID, workspace.ID, project.ID, &AddProjectMemberRequest{MemberID: insider.ID})
	if appErrorStatus(err) != http.StatusBadRequest {
		t.Errorf("duplicate enrolment: expected validation failure, got %v", err)
	}
}

func TestProjectMemberManagement_PrivateVsPublic(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	insider := seedUser(t, db, "insider")
	plain := seedUser(t, db, "plain")
	svc := NewProjectService(db)

	workspace := seedWorkspace(t, db, owner, "Acme")
	seedMember(t, db, workspace, insider, models.RoleMember)
	seedMember(t, db, workspace, plain, models.RoleMember)

	private, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{
		Name: "Secret", IsPrivate: true, Members: []uint{insider.ID},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A private project is managed by its own members, admin or not.
	if _, err := svc.ListMembers(insider.ID, workspace.ID, private.ID); err != nil {
		t.Errorf("project member ListMembers failed: %v", err)
	}
	if _, err := svc.ListMembers(plain.ID, workspace.ID, private.ID); appErrorStatus(err) != http.StatusForbidden {
		t.Errorf("non-project-member ListMembers: expected forbidden, got %v", err)
	}

	// A public project is managed by workspace admins only.
	public, err := svc.Create(owner.ID, workspace.ID, &CreateProjectRequest{Name: "Open"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.ListMembers(plain.ID, workspace.ID, public.ID); appErrorStatus(err) != http.StatusForbidden {
		t.Errorf("plain member managing public project: expected forbidden, got %v", err)
	}
	if _, err := svc.ListMembers(owner.ID, workspace.ID, public.ID); err != nil {
		t.Errorf("admin managing public project failed: %v", err)
	}
}
