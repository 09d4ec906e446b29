package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.AmericanEnglish

	message.SetString(lang, "title.card", "Postcard")
	message.SetString(lang, "title.shared", "A postcard from %s")
	message.SetString(lang, "meta.description", "A digital postcard you can share as a link.")

	message.SetString(lang, "card.flip_hint", "Tap the card to flip it")
	message.SetString(lang, "card.front_alt", "Postcard front")
	message.SetString(lang, "card.stamp_alt", "Stamp")
	message.SetString(lang, "card.from", "From %s")
	message.SetString(lang, "card.make_your_own", "Make your own postcard")
	message.SetString(lang, "card.save", "Update link")
	message.SetString(lang, "card.use_location", "Use my location")

	message.SetString(lang, "field.front_image", "Front image URL")
	message.SetString(lang, "field.message", "Message")
	message.SetString(lang, "field.to", "To")
	message.SetString(lang, "field.address", "Address")
	message.SetString(lang, "field.sender", "From")
	message.SetString(lang, "field.latitude", "Latitude")
	message.SetString(lang, "field.longitude", "Longitude")

	message.SetString(lang, "share.label", "Share this postcard")
	message.SetString(lang, "share.copy", "Copy link")
	message.SetString(lang, "share.copied", "Copied!")

	message.SetString(lang, "tutorial.front", "This is the front of your postcard. Paste any image URL to change it.")
	message.SetString(lang, "tutorial.flip", "Tap anywhere on the card to flip it over.")
	message.SetString(lang, "tutorial.message", "Write your message here.")
	message.SetString(lang, "tutorial.stamp", "The stamp is a map. Drag it to where you are writing from.")
	message.SetString(lang, "tutorial.address", "Fill in who the card is for and who it is from.")
	message.SetString(lang, "tutorial.share", "Copy this link and send it. It opens your card, ready to read.")
	message.SetString(lang, "tutorial.next", "Next")
	message.SetString(lang, "tutorial.done", "Done")
	message.SetString(lang, "tutorial.skip", "Skip tutorial")
	message.SetString(lang, "tutorial.progress", "Step %d of %d")

	message.SetString(lang, "error.title", "Something went wrong")
	message.SetString(lang, "error.not_found", "This page does not exist.")
	message.SetString(lang, "error.unavailable", "The service is temporarily unavailable.")
	message.SetString(lang, "error.generic", "An unexpected error occurred.")
	message.SetString(lang, "error.back_home", "Back to the postcard")
	message.SetString(lang, "error.card.latitude", "Latitude must be a number between -90 and 90.")
	message.SetString(lang, "error.card.longitude", "Longitude must be a number between -180 and 180.")
	message.SetString(lang, "error.card.invalid", "The card could not be updated.")
}
