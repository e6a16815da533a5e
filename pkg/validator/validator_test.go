package validator

import (
	"testing"

	"github.com/anshk25/formbot/internal/domain"
)

func TestValidateRegister(t *testing.T) {
	if errs := validRegister(); errs.HasErrors() {
		t.Fatalf("valid input rejected: %v", errs)
	}

	errs := ValidateRegister("", "alice@example.com", "Secret123")
	if errs["username"] == "" {
		t.Fatal("missing username not reported")
	}

	errs = ValidateRegister("al", "alice@example.com", "Secret123")
	if errs["username"] == "" {
		t.Fatal("short username not reported")
	}

	errs = ValidateRegister("alice!", "alice@example.com", "Secret123")
	if errs["username"] == "" {
		t.Fatal("bad username characters not reported")
	}

	errs = ValidateRegister("alice", "not-an-email", "Secret123")
	if errs["email"] == "" {
		t.Fatal("bad email not reported")
	}

	errs = ValidateRegister("alice", "alice@example.com", "123")
	if errs["password"] == "" {
		t.Fatal("short password not reported")
	}
}

func validRegister() ValidationErrors {
	return ValidateRegister("alice", "alice@example.com", "Secret123")
}

func TestValidateLogin(t *testing.T) {
	if errs := ValidateLogin("alice@example.com", "pw"); errs.HasErrors() {
		t.Fatalf("valid input rejected: %v", errs)
	}
	if errs := ValidateLogin("", ""); errs["email"] == "" || errs["password"] == "" {
		t.Fatalf("missing fields not reported: %v", errs)
	}
}

func TestValidateUserUpdate(t *testing.T) {
	if errs := ValidateUserUpdate("bob", ""); errs.HasErrors() {
		t.Fatalf("valid input rejected: %v", errs)
	}
	if errs := ValidateUserUpdate("", ""); !errs.HasErrors() {
		t.Fatal("missing locator not reported")
	}
}

func TestValidateGrants(t *testing.T) {
	if errs := ValidateGrants(nil); !errs.HasErrors() {
		t.Fatal("empty batch not reported")
	}
	if errs := ValidateGrants([]domain.Grant{{Email: "a@b.com", Access: "admin"}}); !errs.HasErrors() {
		t.Fatal("unknown access level not reported")
	}
	if errs := ValidateGrants([]domain.Grant{{Email: "", Access: "view"}}); !errs.HasErrors() {
		t.Fatal("missing email not reported")
	}
	if errs := ValidateGrants([]domain.Grant{{Email: "a@b.com", Access: "view"}, {Email: "c@d.com", Access: "edit"}}); errs.HasErrors() {
		t.Fatalf("valid batch rejected: %v", errs)
	}
}

func TestValidateFolder(t *testing.T) {
	if errs := ValidateFolder("plans"); errs.HasErrors() {
		t.Fatalf("valid folder rejected: %v", errs)
	}
	if errs := ValidateFolder("  "); !errs.HasErrors() {
		t.Fatal("blank folder name not reported")
	}
}

func TestValidateFormbot(t *testing.T) {
	if errs := ValidateFormbot("survey", "alice_workspace", "root", []string{"output-text", "input-number"}); errs.HasErrors() {
		t.Fatalf("valid formbot rejected: %v", errs)
	}
	if errs := ValidateFormbot("", "alice_workspace", "root", nil); errs["name"] == "" {
		t.Fatal("missing name not reported")
	}
	if errs := ValidateFormbot("survey", "", "root", nil); errs["workspaceId"] == "" {
		t.Fatal("missing workspace not reported")
	}
	if errs := ValidateFormbot("survey", "alice_workspace", "", nil); errs["folderName"] == "" {
		t.Fatal("missing folder not reported")
	}
	if errs := ValidateFormbot("survey", "alice_workspace", "root", []string{"output-video"}); errs["commands"] == "" {
		t.Fatal("unknown command type not reported")
	}
}
