package journey

import (
	"fmt"

	"github.com/aamoria/wellness-api/apierr"
	"github.com/aamoria/wellness-api/models"
)

// mutation edits a journey in place. It must not perform I/O so that it can be
// re-applied after a stale write.
type mutation func(j *models.Journey) error

func indexOf(products []models.JourneyProduct, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func addProduct(clientType models.ClientType, product models.JourneyProduct) mutation {
	return func(j *models.Journey) error {
		content := j.Content.Data()
		products := content.Products(clientType)
		if indexOf(products, product.ID) >= 0 {
			return apierr.Conflict("product %q already exists in %s", product.ID, clientType)
		}
		content.SetProducts(clientType, append(products, product))
		j.Content = datatypesJSON(content)
		return nil
	}
}

func updateProduct(clientType models.ClientType, productID string, product models.JourneyProduct) mutation {
	return func(j *models.Journey) error {
		content := j.Content.Data()
		products := content.Products(clientType)
		i := indexOf(products, productID)
		if i < 0 {
			return apierr.NotFound("product %q not found in %s", productID, clientType)
		}
		product.ID = productID
		products[i] = product
		content.SetProducts(clientType, products)
		j.Content = datatypesJSON(content)
		return nil
	}
}

func deleteProduct(clientType models.ClientType, productID string) mutation {
	return func(j *models.Journey) error {
		content := j.Content.Data()
		products := content.Products(clientType)
		i := indexOf(products, productID)
		if i < 0 {
			return apierr.NotFound("product %q not found in %s", productID, clientType)
		}
		content.SetProducts(clientType, append(products[:i], products[i+1:]...))
		j.Content = datatypesJSON(content)
		return nil
	}
}

func setWaitlist(productID string, setting models.ProductSetting) mutation {
	return func(j *models.Journey) error {
		current := j.ProductSettings.Data()
		settings := make(models.ProductSettings, len(current)+1)
		for k, v := range current {
			settings[k] = v
		}
		settings[productID] = setting
		j.ProductSettings = datatypesSettings(settings)
		return nil
	}
}

// NextProductID builds "<slug>-<sl|ec>-<n+1>" where n is the catalog length,
// counting upward past ids already taken.
func NextProductID(slug string, clientType models.ClientType, existing []models.JourneyProduct) string {
	for n := len(existing) + 1; ; n++ {
		id := fmt.Sprintf("%s-%s-%d", slug, clientType.Short(), n)
		if indexOf(existing, id) < 0 {
			return id
		}
	}
}
