package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, "title.card", "Cartão-postal")
	message.SetString(lang, "title.shared", "Um cartão-postal de %s")
	message.SetString(lang, "meta.description", "Um cartão-postal digital que você compartilha como link.")

	message.SetString(lang, "card.flip_hint", "Toque no cartão para virá-lo")
	message.SetString(lang, "card.front_alt", "Frente do cartão-postal")
	message.SetString(lang, "card.stamp_alt", "Selo")
	message.SetString(lang, "card.from", "De %s")
	message.SetString(lang, "card.make_your_own", "Crie seu próprio cartão-postal")
	message.SetString(lang, "card.save", "Atualizar link")
	message.SetString(lang, "card.use_location", "Usar minha localização")

	message.SetString(lang, "field.front_image", "URL da imagem da frente")
	message.SetString(lang, "field.message", "Mensagem")
	message.SetString(lang, "field.to", "Para")
	message.SetString(lang, "field.address", "Endereço")
	message.SetString(lang, "field.sender", "De")
	message.SetString(lang, "field.latitude", "Latitude")
	message.SetString(lang, "field.longitude", "Longitude")

	message.SetString(lang, "share.label", "Compartilhe este cartão-postal")
	message.SetString(lang, "share.copy", "Copiar link")
	message.SetString(lang, "share.copied", "Copiado!")

	message.SetString(lang, "tutorial.front", "Esta é a frente do seu cartão. Cole a URL de qualquer imagem para trocá-la.")
	message.SetString(lang, "tutorial.flip", "Toque em qualquer parte do cartão para virá-lo.")
	message.SetString(lang, "tutorial.message", "Escreva sua mensagem aqui.")
	message.SetString(lang, "tutorial.stamp", "O selo é um mapa. Arraste-o até o lugar de onde você escreve.")
	message.SetString(lang, "tutorial.address", "Preencha para quem é o cartão e quem o envia.")
	message.SetString(lang, "tutorial.share", "Copie este link e envie. Ele abre seu cartão, pronto para ler.")
	message.SetString(lang, "tutorial.next", "Próximo")
	message.SetString(lang, "tutorial.done", "Concluir")
	message.SetString(lang, "tutorial.skip", "Pular tutorial")
	message.SetString(lang, "tutorial.progress", "Passo %d de %d")

	message.SetString(lang, "error.title", "Algo deu errado")
	message.SetString(lang, "error.not_found", "Esta página não existe.")
	message.SetString(lang, "error.unavailable", "O serviço está temporariamente indisponível.")
	message.SetString(lang, "error.generic", "Ocorreu um erro inesperado.")
	message.SetString(lang, "error.back_home", "Voltar ao cartão-postal")
	message.SetString(lang, "error.card.latitude", "A latitude deve ser um número entre -90 e 90.")
	message.SetString(lang, "error.card.longitude", "A longitude deve ser um número entre -180 e 180.")
	message.SetString(lang, "error.card.invalid", "Não foi possível atualizar o cartão.")
}
