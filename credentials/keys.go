package credentials

// Keys names the storage slots a Store uses. The marketplace and admin
// apps run against disjoint namespaces so their sessions never clobber
// each other when both live in the same storage.
type Keys struct {
	AccessToken  string
	RefreshToken string
	Principal    string
	Flash        string // empty when the app has no flash slot
}

// MarketplaceKeys is the namespace of the buyer/seller app.
func MarketplaceKeys() Keys {
	return Keys{
		AccessToken:  "accessToken",
		RefreshToken: "refreshToken",
		Principal:    "userData",
	}
}

// AdminKeys is the namespace of the admin console, including its
// one-shot flash slot.
func AdminKeys() Keys {
	return Keys{
		AccessToken:  "admin_accessToken",
		RefreshToken: "admin_refreshToken",
		Principal:    "admin_user",
		Flash:        "admin_403_message",
	}
}
