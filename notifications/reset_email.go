package notifications

import "fmt"

const (
	maleImageURL   = "https://i.imgur.com/rNTOOMm.jpeg"
	femaleImageURL = "https://i.imgur.com/Kqkfd69.jpeg"
)

// ResetPasswordEmail renders the password reset email body. The header image
// follows the account's gender.
func ResetPasswordEmail(fullName, gender, resetURL string) string {
	headerImageURL := femaleImageURL
	if gender == "male" {
		headerImageURL = maleImageURL
	}

	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #ddd; border-radius: 10px; overflow: hidden; box-shadow: 0 4px 8px rgba(0,0,0,0.1);">
          <img src="%s" alt="Header Image" style="width: 100%%; height: auto; display: block;">
          <div style="padding: 24px; line-height: 1.6; color: #333;">
              <h2 style="color: #1e40af; text-align: center;">Password Reset</h2>
              <p style="font-size: 16px;">Hello %s,</p>
              <p style="font-size: 16px;">You requested a password reset. Please click the button below to create a new password. This link is valid for 1 hour.</p>
              <div style="text-align: center; margin: 25px 0;">
                  <a href="%s" style="background-color: #4f46e5; color: white; padding: 14px 28px; text-decoration: none; border-radius: 8px; display: inline-block; font-weight: bold;">Reset Your Password</a>
              </div>
              <p style="margin-top: 20px; font-size: 14px; color: #666;">If you did not request this, please ignore this email.</p>
              <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
              <p style="font-size: 12px; text-align: center; color: #999;">The AI English Assistant Team</p>
          </div>
      </div>
    `, headerImageURL, fullName, resetURL)
}
