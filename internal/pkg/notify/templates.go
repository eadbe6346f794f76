package notify

import "fmt"

// TransferSubject builds the subject line for a portal transfer
// notification.
func TransferSubject(count int, fromPortal string) string {
	plural := ""
	if count > 1 {
		plural = "s"
	}
	return fmt.Sprintf("%d Candidate%s Received from %s", count, plural, fromPortal)
}

// TransferBody builds the body of a portal transfer notification.
func TransferBody(fromPortal, toPortal string, count int, purpose, senderEmpID string) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2>Candidate Transfer Notification</h2>
				<p>%d candidate(s) have been sent from <strong>%s</strong> to <strong>%s</strong>.</p>
				<p>Purpose: %s</p>
				<p>Initiated by: %s</p>
				<p>Please log in to your portal to process them.</p>
			</div>
		</body>
		</html>
	`, count, fromPortal, toPortal, purpose, senderEmpID)
}

// DeploymentBody wraps the free-form content of a deployment or internal
// transfer email with the sender's signature block.
func DeploymentBody(content, senderName, designation, mobile, email string) string {
	return fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				%s
				<br>
				<p>Best regards,<br>
				<strong>%s</strong><br>
				%s<br>
				%s | %s</p>
			</div>
		</body>
		</html>
	`, content, senderName, designation, mobile, email)
}
