package projectprovisioner

import "fmt"

// Summary returns the next steps shown after a project was created in name.
func Summary(name, branch string) string {
	return fmt.Sprintf(
		"\nSuccess!\n\nNext steps:\n  cd %s\n  git remote add origin <your-repo-url>\n  git push -u origin %s",
		name,
		branch,
	)
}
